package model

// SkillTier 由技能分通过固定阈值派生的展示等级
type SkillTier string

const (
	TierNone      SkillTier = "none"
	TierUncommon  SkillTier = "Uncommon"
	TierRare      SkillTier = "Rare"
	TierEpic      SkillTier = "Epic"
	TierLegendary SkillTier = "Legendary"
	TierMythical  SkillTier = "Mythical"
)

// MaxQuizScore 技能分上限
const MaxQuizScore = 100

// PortfolioSize 精选答案保留条数
const PortfolioSize = 3

// DeriveTier 技能分 -> 等级。阈值固定：
// 0 无等级；1-25 Uncommon；26-50 Rare；51-75 Epic；76-99 Legendary；100 Mythical
func DeriveTier(score int) SkillTier {
	switch {
	case score <= 0:
		return TierNone
	case score <= 25:
		return TierUncommon
	case score <= 50:
		return TierRare
	case score <= 75:
		return TierEpic
	case score < MaxQuizScore:
		return TierLegendary
	default:
		return TierMythical
	}
}

// PortfolioItem 精选答案条目，最近的高置信度回答排在最前
type PortfolioItem struct {
	VideoID    string `json:"videoId"`
	Question   string `json:"question"`
	UserAnswer string `json:"userAnswer"`
	AIFeedback string `json:"aiFeedback"`
}

// SkillEntry 用户在某主题上的技能账本。
// QuizScore 每次通过 +1，单调不减，封顶 100；与兴趣分相互独立。
type SkillEntry struct {
	BaseModel
	UserID    string          `gorm:"index:idx_skill_user_topic,unique;type:varchar(36)" json:"userId"`
	TopicSlug string          `gorm:"index:idx_skill_user_topic,unique;size:64" json:"topicSlug"`
	QuizScore int             `gorm:"not null;default:0" json:"quizScore"`
	Tier      SkillTier       `gorm:"size:16" json:"tier"`
	Portfolio []PortfolioItem `gorm:"serializer:json;type:json" json:"portfolio"`
}

func (SkillEntry) TableName() string {
	return "skill_entries"
}
