package repository

import (
	"errors"

	"skillreel_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

// FindByUserAndTopic 不存在时返回 (nil, nil)，由上层做懒初始化
func (r *SkillRepository) FindByUserAndTopic(userID, topicSlug string) (*model.SkillEntry, error) {
	var entry model.SkillEntry
	err := r.DB.Where("user_id = ? AND topic_slug = ?", userID, topicSlug).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert 按 (user_id, topic_slug) 写入，首次通过时行不存在也必须成功
func (r *SkillRepository) Upsert(entry *model.SkillEntry) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic_slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"quiz_score", "tier", "portfolio", "updated_at"}),
	}).Create(entry).Error
}

func (r *SkillRepository) ListByUser(userID string) ([]model.SkillEntry, error) {
	var entries []model.SkillEntry
	err := r.DB.Where("user_id = ?", userID).Order("quiz_score DESC").Find(&entries).Error
	return entries, err
}
