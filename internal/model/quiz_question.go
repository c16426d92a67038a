package model

// QuizQuestion 预生成的视频测验题。创建后不可修改；
// 每个视频最多 6 题，按 LessonNumber 排序后分成两批（每批最多 3 题）。
type QuizQuestion struct {
	BaseModel
	VideoID      string `gorm:"index:idx_question_video_lesson,unique;type:varchar(36)" json:"videoId"`
	LessonNumber int    `gorm:"index:idx_question_video_lesson,unique" json:"lessonNumber"`
	SkillTag     string `gorm:"size:64" json:"skillTag"`
	QuestionText string `gorm:"type:text" json:"questionText"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
