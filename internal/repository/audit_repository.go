package repository

import (
	"skillreel_backend/internal/model"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

// Append 追加一条观看审计事件。该表无更新/删除路径。
func (r *AuditRepository) Append(event *model.WatchAuditEvent) error {
	return r.DB.Create(event).Error
}
