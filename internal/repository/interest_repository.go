package repository

import (
	"time"

	"skillreel_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InterestRepository struct {
	DB *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{DB: db}
}

// AtomicAdd 在存储层原子累加兴趣分。
// 多标签页/多设备同时上报时依赖 MySQL 的 ON DUPLICATE KEY UPDATE，
// 不在应用层做读改写。
func (r *InterestRepository) AtomicAdd(userID, tag string, delta int64) error {
	now := time.Now()
	row := model.InterestScore{
		UserID:      userID,
		Tag:         tag,
		Score:       delta,
		LastUpdated: now,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "tag"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":        gorm.Expr("score + ?", delta),
			"last_updated": now,
		}),
	}).Create(&row).Error
}

func (r *InterestRepository) ListByUser(userID string) ([]model.InterestScore, error) {
	var scores []model.InterestScore
	err := r.DB.Where("user_id = ?", userID).Order("score DESC").Find(&scores).Error
	return scores, err
}
