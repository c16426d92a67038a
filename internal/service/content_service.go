package service

import (
	"context"

	"skillreel_backend/internal/model"
	"skillreel_backend/internal/repository"
)

// ContentService 管理端的内容维护：分段、题目、视频/频道基础数据。
// 正常流程里这些数据由外部的抓取与出题流水线写入，
// 这里提供的是同一写路径的 HTTP 入口。
type ContentService struct {
	SegmentRepo  *repository.SegmentRepository
	QuestionRepo *repository.QuizQuestionRepository
	VideoRepo    *repository.VideoRepository
	ChannelRepo  *repository.ChannelRepository
	Watch        *WatchService
	MaxQuestions int
}

func NewContentService(
	segmentRepo *repository.SegmentRepository,
	questionRepo *repository.QuizQuestionRepository,
	videoRepo *repository.VideoRepository,
	channelRepo *repository.ChannelRepository,
	watch *WatchService,
	maxQuestions int,
) *ContentService {
	return &ContentService{
		SegmentRepo:  segmentRepo,
		QuestionRepo: questionRepo,
		VideoRepo:    videoRepo,
		ChannelRepo:  channelRepo,
		Watch:        watch,
		MaxQuestions: maxQuestions,
	}
}

// CreateSegment 校验并写入一条主题分段，然后失效该视频的分段缓存
func (s *ContentService) CreateSegment(ctx context.Context, segment *model.VideoTopicSegment) error {
	if _, err := s.VideoRepo.FindByID(segment.VideoID); err != nil {
		return err
	}
	if err := s.SegmentRepo.Create(segment); err != nil {
		return err
	}
	s.Watch.InvalidateSegmentCache(ctx, segment.VideoID)
	return nil
}

func (s *ContentService) ListSegments(videoID string) ([]model.VideoTopicSegment, error) {
	return s.SegmentRepo.FindByVideo(videoID)
}

func (s *ContentService) DeleteSegment(ctx context.Context, videoID string, segmentID uint) error {
	if err := s.SegmentRepo.Delete(videoID, segmentID); err != nil {
		return err
	}
	s.Watch.InvalidateSegmentCache(ctx, videoID)
	return nil
}

// CreateQuestion 写入一道预生成的测验题，单视频上限在仓储层把关
func (s *ContentService) CreateQuestion(question *model.QuizQuestion) error {
	if _, err := s.VideoRepo.FindByID(question.VideoID); err != nil {
		return err
	}
	return s.QuestionRepo.Create(question, s.MaxQuestions)
}

func (s *ContentService) CreateVideo(video *model.Video) error {
	return s.VideoRepo.Create(video)
}

func (s *ContentService) ListVideos(limit, offset int) ([]model.Video, error) {
	return s.VideoRepo.List(limit, offset)
}

func (s *ContentService) CreateChannel(channel *model.Channel) error {
	return s.ChannelRepo.Create(channel)
}
