package model

// VideoTopicSegment 视频时间轴上的主题分段，按观看百分比 [StartPct, EndPct] 标注。
// 同一视频的分段允许重叠。
type VideoTopicSegment struct {
	BaseModel
	VideoID  string  `gorm:"index:idx_segment_video_tag,unique;type:varchar(36)" json:"videoId"`
	Tag      string  `gorm:"index:idx_segment_video_tag,unique;size:64" json:"tag"`
	Weight   int     `gorm:"not null" json:"weight"` // 完整看完该分段可得的兴趣分
	StartPct float64 `gorm:"not null" json:"startPct"`
	EndPct   float64 `gorm:"not null" json:"endPct"`
}

func (VideoTopicSegment) TableName() string {
	return "video_topic_segments"
}
