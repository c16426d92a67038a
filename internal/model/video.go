package model

// Channel 创作者频道，认领流程由外部模块处理
type Channel struct {
	UUIDBase
	Name          string `gorm:"size:128" json:"name"`
	CreatorUserID string `gorm:"index;type:varchar(36)" json:"creatorUserId"`
}

func (Channel) TableName() string {
	return "channels"
}

// Video 视频元数据，抓取由外部模块写入；这里只承载分段与题目的外键
type Video struct {
	UUIDBase
	Title           string  `gorm:"size:255" json:"title"`
	ChannelID       *string `gorm:"index;type:varchar(36)" json:"channelId"` // 可为空：未认领的视频没有频道归属
	DurationSeconds float64 `json:"durationSeconds"`
}

func (Video) TableName() string {
	return "videos"
}
