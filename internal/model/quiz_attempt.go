package model

// Confidence AI 判题给出的置信度
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ValidConfidence 非法取值统一降级为 low，避免外部模型输出污染账本
func ValidConfidence(c string) Confidence {
	switch Confidence(c) {
	case ConfidenceMedium:
		return ConfidenceMedium
	case ConfidenceHigh:
		return ConfidenceHigh
	default:
		return ConfidenceLow
	}
}

// QuizAttempt 答题流水，只追加，不修改不删除
type QuizAttempt struct {
	BaseModel
	UserID     string     `gorm:"index;type:varchar(36)" json:"userId"`
	VideoID    string     `gorm:"index;type:varchar(36)" json:"videoId"`
	Topic      string     `gorm:"size:64" json:"topic"`
	Question   string     `gorm:"type:text" json:"question"`
	UserAnswer string     `gorm:"type:text" json:"userAnswer"`
	AIFeedback string     `gorm:"type:text" json:"aiFeedback"`
	Confidence Confidence `gorm:"size:8" json:"confidence"`
	Passed     bool       `gorm:"not null" json:"passed"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
