package model

import "time"

// WatchAuditEvent 观看上报审计事件，只追加，服务内无读取路径
type WatchAuditEvent struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            string    `gorm:"index;type:varchar(36)" json:"userId"`
	VideoID           string    `gorm:"index;type:varchar(36)" json:"videoId"`
	WatchPct          float64   `json:"watchPct"`
	PositionSeconds   float64   `json:"positionSeconds"`
	DurationSeconds   float64   `json:"durationSeconds"`
	RealWatchSeconds  float64   `json:"realWatchSeconds"`
	ReportedAt        time.Time `json:"reportedAt"`
}

func (WatchAuditEvent) TableName() string {
	return "watch_audit_events"
}
