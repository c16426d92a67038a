package service

import (
	"skillreel_backend/internal/event"
	"skillreel_backend/internal/model"
	"skillreel_backend/internal/util"
	"skillreel_backend/pkg/logger"
	"skillreel_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type QuestionSource interface {
	FindByVideoOrdered(videoID string) ([]model.QuizQuestion, error)
}

type AttemptSink interface {
	Append(attempt *model.QuizAttempt) error
}

type Grader interface {
	Grade(topic, question, userAnswer string) *GradeVerdict
}

type PassRecorder interface {
	RecordPass(userID, topic string, attempt *model.QuizAttempt) (*model.SkillEntry, error)
}

// QuestionBatch 一批题目（最多 BatchSize 条）及批次元信息
type QuestionBatch struct {
	BatchIndex   int                  `json:"batchIndex"`
	Questions    []model.QuizQuestion `json:"questions"`
	TotalBatches int                  `json:"totalBatches"`
	HasMore      bool                 `json:"hasMore"` // 本批之后还有下一批
}

// SubmitRequest 答题提交
type SubmitRequest struct {
	VideoID    string `json:"videoId" binding:"required"`
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// SubmitResult 判题结论 + 落库确认 + 技能账本变化
type SubmitResult struct {
	Verdict    *GradeVerdict     `json:"verdict"`
	Persisted  bool              `json:"persisted"` // 流水是否写入成功
	SkillEntry *model.SkillEntry `json:"skillEntry,omitempty"`
}

type QuizService struct {
	QuestionRepo QuestionSource
	AttemptRepo  AttemptSink
	Grading      Grader
	Skills       PassRecorder
	Publisher    *event.EventPublisher
	BatchSize    int
}

func NewQuizService(
	questionRepo QuestionSource,
	attemptRepo AttemptSink,
	grading Grader,
	skills PassRecorder,
	publisher *event.EventPublisher,
	batchSize int,
) *QuizService {
	return &QuizService{
		QuestionRepo: questionRepo,
		AttemptRepo:  attemptRepo,
		Grading:      grading,
		Skills:       skills,
		Publisher:    publisher,
		BatchSize:    batchSize,
	}
}

// GetQuestionBatch 返回第 batchIndex 批题目。
// 题目按课时号排序后每 BatchSize 条一批；第 0 批随测验开始加载，
// 第 1 批只有在题目多于一批时由用户主动选择加载。
func (s *QuizService) GetQuestionBatch(videoID string, batchIndex int) (*QuestionBatch, error) {
	if batchIndex < 0 {
		return nil, util.ErrInvalidBatch
	}

	questions, err := s.QuestionRepo.FindByVideoOrdered(videoID)
	if err != nil {
		return nil, err
	}

	total := (len(questions) + s.BatchSize - 1) / s.BatchSize
	if total == 0 {
		// 无题目视频：返回空批次，客户端进入 no-questions 终态
		return &QuestionBatch{BatchIndex: 0, Questions: []model.QuizQuestion{}, TotalBatches: 0, HasMore: false}, nil
	}
	if batchIndex >= total {
		return nil, util.ErrInvalidBatch
	}

	start := batchIndex * s.BatchSize
	end := start + s.BatchSize
	if end > len(questions) {
		end = len(questions)
	}

	return &QuestionBatch{
		BatchIndex:   batchIndex,
		Questions:    questions[start:end],
		TotalBatches: total,
		HasMore:      batchIndex < total-1,
	}, nil
}

// SubmitAnswer 判题、写答题流水、通过时记技能分。
// 判题永不失败（内部兜底）；流水写入失败只记日志，结论照常返回；
// 技能账本写入失败同样不影响用户看到的结论。
func (s *QuizService) SubmitAnswer(userID string, req *SubmitRequest) (*SubmitResult, error) {
	if userID == "" {
		return nil, util.ErrInvalidReport
	}

	question, err := s.findQuestion(req.VideoID, req.QuestionID)
	if err != nil {
		return nil, err
	}

	verdict := s.Grading.Grade(question.SkillTag, question.QuestionText, req.Answer)

	switch {
	case verdict.Feedback == FallbackFeedback:
		monitoring.QuizSubmissionCounter.WithLabelValues("fallback").Inc()
	case verdict.Passed:
		monitoring.QuizSubmissionCounter.WithLabelValues("passed").Inc()
	default:
		monitoring.QuizSubmissionCounter.WithLabelValues("failed").Inc()
	}

	attempt := &model.QuizAttempt{
		UserID:     userID,
		VideoID:    req.VideoID,
		Topic:      question.SkillTag,
		Question:   question.QuestionText,
		UserAnswer: req.Answer,
		AIFeedback: verdict.Feedback,
		Confidence: verdict.Confidence,
		Passed:     verdict.Passed,
	}

	result := &SubmitResult{Verdict: verdict, Persisted: true}
	if err := s.AttemptRepo.Append(attempt); err != nil {
		result.Persisted = false
		logger.Log.Error("Failed to persist quiz attempt",
			zap.String("userId", userID),
			zap.String("videoId", req.VideoID),
			zap.Error(err))
	}

	if verdict.Passed {
		entry, err := s.Skills.RecordPass(userID, question.SkillTag, attempt)
		if err != nil {
			logger.Log.Error("Failed to record skill pass",
				zap.String("userId", userID),
				zap.String("topic", question.SkillTag),
				zap.Error(err))
		} else {
			result.SkillEntry = entry
		}
	}

	s.Publisher.Publish(event.QuizAttempted, map[string]interface{}{
		"userId":     userID,
		"videoId":    req.VideoID,
		"topic":      question.SkillTag,
		"passed":     verdict.Passed,
		"confidence": verdict.Confidence,
	})

	return result, nil
}

func (s *QuizService) findQuestion(videoID string, questionID uint) (*model.QuizQuestion, error) {
	questions, err := s.QuestionRepo.FindByVideoOrdered(videoID)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if questions[i].ID == questionID {
			return &questions[i], nil
		}
	}
	return nil, util.ErrQuestionNotFound
}
