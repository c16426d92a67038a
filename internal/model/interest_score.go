package model

import "time"

// InterestScore 用户对某主题的累计兴趣分。只增不减，无上限。
// 并发上报通过存储层原子自增保证不丢增量。
type InterestScore struct {
	BaseModel
	UserID      string    `gorm:"index:idx_interest_user_tag,unique;type:varchar(36)" json:"userId"`
	Tag         string    `gorm:"index:idx_interest_user_tag,unique;size:64" json:"tag"`
	Score       int64     `gorm:"not null;default:0" json:"score"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (InterestScore) TableName() string {
	return "interest_scores"
}
