package service

import (
	"skillreel_backend/internal/event"
	"skillreel_backend/internal/model"
	"skillreel_backend/internal/util"
	"skillreel_backend/pkg/logger"

	"go.uber.org/zap"
)

type SkillStore interface {
	FindByUserAndTopic(userID, topicSlug string) (*model.SkillEntry, error)
	Upsert(entry *model.SkillEntry) error
	ListByUser(userID string) ([]model.SkillEntry, error)
}

type SkillService struct {
	SkillRepo SkillStore
	Publisher *event.EventPublisher
}

func NewSkillService(skillRepo SkillStore, publisher *event.EventPublisher) *SkillService {
	return &SkillService{SkillRepo: skillRepo, Publisher: publisher}
}

// RecordPass 在用户通过一道题后把主题技能分 +1（封顶 100），
// 高置信度的回答同时进入精选答案（最多保留 3 条，最新在前）。
// 只在判题通过时调用；失败的尝试不会进账本。
//
// 多端并行答题时精选答案的读改写存在竞态，可能偶发丢一条，
// 技能分本身经由上面的读取+Upsert 也可能少计一次；产品上可接受，不加锁。
func (s *SkillService) RecordPass(userID, topic string, attempt *model.QuizAttempt) (*model.SkillEntry, error) {
	slug := util.TopicSlug(topic)
	if userID == "" || slug == "" {
		return nil, util.ErrInvalidReport
	}

	entry, err := s.SkillRepo.FindByUserAndTopic(userID, slug)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		// 首次通过，懒初始化
		entry = &model.SkillEntry{
			UserID:    userID,
			TopicSlug: slug,
			QuizScore: 0,
			Tier:      model.DeriveTier(0),
			Portfolio: []model.PortfolioItem{},
		}
	}

	if entry.QuizScore < model.MaxQuizScore {
		entry.QuizScore++
	}
	entry.Tier = model.DeriveTier(entry.QuizScore)

	if attempt.Confidence == model.ConfidenceHigh {
		item := model.PortfolioItem{
			VideoID:    attempt.VideoID,
			Question:   attempt.Question,
			UserAnswer: attempt.UserAnswer,
			AIFeedback: attempt.AIFeedback,
		}
		entry.Portfolio = append([]model.PortfolioItem{item}, entry.Portfolio...)
		if len(entry.Portfolio) > model.PortfolioSize {
			entry.Portfolio = entry.Portfolio[:model.PortfolioSize]
		}
	}

	if err := s.SkillRepo.Upsert(entry); err != nil {
		return nil, err
	}

	s.Publisher.Publish(event.SkillPassed, map[string]interface{}{
		"userId":    userID,
		"topicSlug": slug,
		"quizScore": entry.QuizScore,
		"tier":      entry.Tier,
	})

	logger.Log.Info("Skill pass recorded",
		zap.String("userId", userID),
		zap.String("topicSlug", slug),
		zap.Int("quizScore", entry.QuizScore))

	return entry, nil
}

func (s *SkillService) ListSkills(userID string) ([]model.SkillEntry, error) {
	return s.SkillRepo.ListByUser(userID)
}

// GetSkill 单个主题的技能条目；主题参数先做同样的归一化再查询
func (s *SkillService) GetSkill(userID, topic string) (*model.SkillEntry, error) {
	slug := util.TopicSlug(topic)
	entry, err := s.SkillRepo.FindByUserAndTopic(userID, slug)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, util.ErrSkillNotFound
	}
	return entry, nil
}
