package service

import (
	"skillreel_backend/internal/model"
	"skillreel_backend/internal/repository"
)

// CreatorService 创作者侧的分析读路径
type CreatorService struct {
	StatRepo    *repository.CreatorStatRepository
	ChannelRepo *repository.ChannelRepository
}

func NewCreatorService(statRepo *repository.CreatorStatRepository, channelRepo *repository.ChannelRepository) *CreatorService {
	return &CreatorService{StatRepo: statRepo, ChannelRepo: channelRepo}
}

// ChannelWatchStats 创作者名下各频道与观看统计
type ChannelWatchStats struct {
	Channels []model.Channel          `json:"channels"`
	Stats    []model.CreatorWatchStat `json:"stats"`
}

// WatchStats 创作者名下所有频道的观众观看统计
func (s *CreatorService) WatchStats(creatorUserID string) (*ChannelWatchStats, error) {
	channels, err := s.ChannelRepo.ListByCreator(creatorUserID)
	if err != nil {
		return nil, err
	}
	stats, err := s.StatRepo.ListByCreator(creatorUserID)
	if err != nil {
		return nil, err
	}
	return &ChannelWatchStats{Channels: channels, Stats: stats}, nil
}
