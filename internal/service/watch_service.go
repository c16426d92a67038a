package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"skillreel_backend/internal/config"
	"skillreel_backend/internal/event"
	"skillreel_backend/internal/model"
	"skillreel_backend/internal/util"
	"skillreel_backend/pkg/logger"
	"skillreel_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// 观看计分依赖的最小存储接口，便于单元测试替换为内存实现
type SegmentSource interface {
	FindByVideo(videoID string) ([]model.VideoTopicSegment, error)
}

type InterestStore interface {
	AtomicAdd(userID, tag string, delta int64) error
	ListByUser(userID string) ([]model.InterestScore, error)
}

type CreatorStatSink interface {
	AtomicAddWatchSeconds(userID, channelID string, deltaSeconds int64) error
}

type ChannelResolver interface {
	ResolveChannelID(videoID string) (*string, error)
}

type AuditSink interface {
	Append(event *model.WatchAuditEvent) error
}

// WatchReport 客户端计时器的周期/收尾上报
type WatchReport struct {
	VideoID          string  `json:"videoId" binding:"required"`
	CurrentTime      float64 `json:"currentTime"`      // 播放器位置（秒）
	Duration         float64 `json:"duration"`         // 视频总时长（秒）
	RealWatchSeconds float64 `json:"realWatchSeconds"` // 真实观看秒数增量（墙钟）
}

// WatchReportResult 计分明细，返回给客户端供调试面板展示
type WatchReportResult struct {
	WatchPct       float64          `json:"watchPct"`
	AwardedPoints  map[string]int64 `json:"awardedPoints"` // tag -> 本次新增兴趣分
	CreditedSecs   float64          `json:"creditedSeconds"`
	ChannelID      *string          `json:"channelId,omitempty"`
	BelowThreshold bool             `json:"belowThreshold"` // 低于会话时长下限，未计分
}

type WatchService struct {
	SegmentRepo  SegmentSource
	InterestRepo InterestStore
	CreatorRepo  CreatorStatSink
	VideoRepo    ChannelResolver
	AuditRepo    AuditSink
	Redis        *redis.Client
	Publisher    *event.EventPublisher
	Config       *config.Config
}

func NewWatchService(
	segmentRepo SegmentSource,
	interestRepo InterestStore,
	creatorRepo CreatorStatSink,
	videoRepo ChannelResolver,
	auditRepo AuditSink,
	rdb *redis.Client,
	publisher *event.EventPublisher,
	cfg *config.Config,
) *WatchService {
	return &WatchService{
		SegmentRepo:  segmentRepo,
		InterestRepo: interestRepo,
		CreatorRepo:  creatorRepo,
		VideoRepo:    videoRepo,
		AuditRepo:    auditRepo,
		Redis:        rdb,
		Publisher:    publisher,
		Config:       cfg,
	}
}

// ProcessReport 处理一次观看上报：兴趣计分、创作者时长、审计事件。
// 三个子步骤相互独立，任一失败只记日志，不影响其他步骤；
// 只有前置条件不满足时整个调用才失败且不产生任何写入。
func (s *WatchService) ProcessReport(ctx context.Context, userID string, report *WatchReport) (*WatchReportResult, error) {
	if userID == "" || report.VideoID == "" || report.Duration <= 0 || report.CurrentTime <= 0 {
		monitoring.WatchReportCounter.WithLabelValues("rejected").Inc()
		return nil, util.ErrInvalidReport
	}

	watchPct := report.CurrentTime / report.Duration * 100
	if watchPct > 100 {
		watchPct = 100
	}

	result := &WatchReportResult{
		WatchPct:      watchPct,
		AwardedPoints: map[string]int64{},
	}

	// 会话总时长低于下限的上报不计分、不计创作者时长，但审计事件仍然落库。
	// 客户端计时器有同样的下限，这里再挡一次，不信任客户端。
	belowFloor := report.RealWatchSeconds < float64(s.Config.Watch.MinSessionSeconds)
	result.BelowThreshold = belowFloor

	if !belowFloor {
		s.scoreSegments(ctx, userID, report, watchPct, result)
		s.creditCreator(userID, report, result)
		monitoring.WatchReportCounter.WithLabelValues("scored").Inc()
	} else {
		monitoring.WatchReportCounter.WithLabelValues("skipped").Inc()
	}

	if err := s.AuditRepo.Append(&model.WatchAuditEvent{
		UserID:           userID,
		VideoID:          report.VideoID,
		WatchPct:         watchPct,
		PositionSeconds:  report.CurrentTime,
		DurationSeconds:  report.Duration,
		RealWatchSeconds: report.RealWatchSeconds,
		ReportedAt:       time.Now(),
	}); err != nil {
		logger.Log.Error("Failed to append watch audit event",
			zap.String("userId", userID),
			zap.String("videoId", report.VideoID),
			zap.Error(err))
	}

	s.Publisher.Publish(event.WatchReported, map[string]interface{}{
		"userId":           userID,
		"videoId":          report.VideoID,
		"watchPct":         watchPct,
		"realWatchSeconds": report.RealWatchSeconds,
	})

	return result, nil
}

// scoreSegments 按主题分段折算兴趣分并原子累加
func (s *WatchService) scoreSegments(ctx context.Context, userID string, report *WatchReport, watchPct float64, result *WatchReportResult) {
	segments, err := s.cachedSegments(ctx, report.VideoID)
	if err != nil {
		logger.Log.Error("Failed to load topic segments",
			zap.String("videoId", report.VideoID),
			zap.Error(err))
		return
	}

	for _, seg := range segments {
		points := SegmentPoints(seg, watchPct)
		if points <= 0 {
			continue
		}
		if err := s.InterestRepo.AtomicAdd(userID, seg.Tag, points); err != nil {
			logger.Log.Error("Failed to add interest score",
				zap.String("userId", userID),
				zap.String("tag", seg.Tag),
				zap.Int64("points", points),
				zap.Error(err))
			continue
		}
		result.AwardedPoints[seg.Tag] = points
		monitoring.InterestPointsCounter.Add(float64(points))
	}
}

// creditCreator 把真实观看秒数记到视频归属频道的创作者账上；
// 视频未认领（无频道）不算错误，直接跳过
func (s *WatchService) creditCreator(userID string, report *WatchReport, result *WatchReportResult) {
	if report.RealWatchSeconds <= 0 {
		return
	}

	channelID, err := s.VideoRepo.ResolveChannelID(report.VideoID)
	if err != nil {
		logger.Log.Error("Failed to resolve video channel",
			zap.String("videoId", report.VideoID),
			zap.Error(err))
		return
	}
	if channelID == nil {
		return
	}

	seconds := int64(math.Round(report.RealWatchSeconds))
	if err := s.CreatorRepo.AtomicAddWatchSeconds(userID, *channelID, seconds); err != nil {
		logger.Log.Error("Failed to credit creator watch time",
			zap.String("userId", userID),
			zap.String("channelId", *channelID),
			zap.Error(err))
		return
	}
	result.ChannelID = channelID
	result.CreditedSecs = report.RealWatchSeconds
}

// SegmentPoints 单个分段的兴趣分：看完分段得满权重，未进入分段得 0，
// 部分观看按比例四舍五入
func SegmentPoints(seg model.VideoTopicSegment, watchPct float64) int64 {
	if watchPct >= seg.EndPct {
		return int64(seg.Weight)
	}
	if watchPct <= seg.StartPct {
		return 0
	}
	ratio := (watchPct - seg.StartPct) / (seg.EndPct - seg.StartPct)
	return int64(math.Round(float64(seg.Weight) * ratio))
}

// cachedSegments 带 Redis 缓存的分段查询，观看上报是最热路径。
// 缓存任何一步出错都静默回源数据库。
func (s *WatchService) cachedSegments(ctx context.Context, videoID string) ([]model.VideoTopicSegment, error) {
	key := fmt.Sprintf("skillreel:segments:%s", videoID)

	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var cached []model.VideoTopicSegment
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	segments, err := s.SegmentRepo.FindByVideo(videoID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(segments); err == nil {
			ttl := time.Duration(s.Config.Watch.SegmentCacheTTLMin) * time.Minute
			if err := s.Redis.Set(ctx, key, raw, ttl).Err(); err != nil {
				logger.Log.Warn("Failed to cache topic segments", zap.String("videoId", videoID), zap.Error(err))
			}
		}
	}

	return segments, nil
}

// ListInterests 用户的全部主题兴趣分，按分数降序
func (s *WatchService) ListInterests(userID string) ([]model.InterestScore, error) {
	return s.InterestRepo.ListByUser(userID)
}

// InvalidateSegmentCache 管理端改动分段后调用
func (s *WatchService) InvalidateSegmentCache(ctx context.Context, videoID string) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf("skillreel:segments:%s", videoID)
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate segment cache", zap.String("videoId", videoID), zap.Error(err))
	}
}
