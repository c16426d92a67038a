package repository

import (
	"time"

	"skillreel_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreatorStatRepository struct {
	DB *gorm.DB
}

func NewCreatorStatRepository(db *gorm.DB) *CreatorStatRepository {
	return &CreatorStatRepository{DB: db}
}

// AtomicAddWatchSeconds 原子累加某用户在某频道上的真实观看秒数
func (r *CreatorStatRepository) AtomicAddWatchSeconds(userID, channelID string, deltaSeconds int64) error {
	now := time.Now()
	row := model.CreatorWatchStat{
		UserID:            userID,
		ChannelID:         channelID,
		TotalWatchSeconds: deltaSeconds,
		LastWatchedAt:     now,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "channel_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_watch_seconds": gorm.Expr("total_watch_seconds + ?", deltaSeconds),
			"last_watched_at":     now,
		}),
	}).Create(&row).Error
}

// ListByCreator 查询某创作者名下所有频道的观看统计
func (r *CreatorStatRepository) ListByCreator(creatorUserID string) ([]model.CreatorWatchStat, error) {
	var stats []model.CreatorWatchStat
	err := r.DB.
		Joins("JOIN channels ON channels.id = creator_watch_stats.channel_id").
		Where("channels.creator_user_id = ?", creatorUserID).
		Order("creator_watch_stats.total_watch_seconds DESC").
		Find(&stats).Error
	return stats, err
}
