package repository

import (
	"skillreel_backend/internal/model"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

// Append 追加答题流水，只增不改
func (r *QuizAttemptRepository) Append(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizAttemptRepository) ListByUserAndVideo(userID, videoID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ? AND video_id = ?", userID, videoID).
		Order("created_at ASC").Find(&attempts).Error
	return attempts, err
}
