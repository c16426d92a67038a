package model

import "time"

// CreatorWatchStat 用户在某频道上累计的真实观看秒数，用于创作者分析
type CreatorWatchStat struct {
	BaseModel
	UserID            string    `gorm:"index:idx_watchstat_user_channel,unique;type:varchar(36)" json:"userId"`
	ChannelID         string    `gorm:"index:idx_watchstat_user_channel,unique;type:varchar(36)" json:"channelId"`
	TotalWatchSeconds int64     `gorm:"not null;default:0" json:"totalWatchSeconds"`
	LastWatchedAt     time.Time `json:"lastWatchedAt"`
}

func (CreatorWatchStat) TableName() string {
	return "creator_watch_stats"
}
