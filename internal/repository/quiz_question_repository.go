package repository

import (
	"skillreel_backend/internal/model"
	"skillreel_backend/internal/util"

	"gorm.io/gorm"
)

type QuizQuestionRepository struct {
	DB *gorm.DB
}

func NewQuizQuestionRepository(db *gorm.DB) *QuizQuestionRepository {
	return &QuizQuestionRepository{DB: db}
}

// FindByVideoOrdered 按课时号升序返回视频的全部题目（最多 6 条）
func (r *QuizQuestionRepository) FindByVideoOrdered(videoID string) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("video_id = ?", videoID).Order("lesson_number ASC").Find(&questions).Error
	return questions, err
}

// Create 创建题目，超出单视频上限时拒绝。题目创建后不可修改。
func (r *QuizQuestionRepository) Create(question *model.QuizQuestion, maxPerVideo int) error {
	var count int64
	if err := r.DB.Model(&model.QuizQuestion{}).Where("video_id = ?", question.VideoID).Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(maxPerVideo) {
		return util.ErrQuestionLimit
	}
	return r.DB.Create(question).Error
}
