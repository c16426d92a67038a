package repository

import (
	"errors"

	"skillreel_backend/internal/model"
	"skillreel_backend/internal/util"

	"gorm.io/gorm"
)

type VideoRepository struct {
	DB *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

func (r *VideoRepository) FindByID(videoID string) (*model.Video, error) {
	var video model.Video
	err := r.DB.First(&video, "id = ?", videoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// ResolveChannelID 查视频归属的频道；未认领的视频返回 nil，不算错误
func (r *VideoRepository) ResolveChannelID(videoID string) (*string, error) {
	var video model.Video
	err := r.DB.Select("channel_id").First(&video, "id = ?", videoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return video.ChannelID, nil
}

func (r *VideoRepository) Create(video *model.Video) error {
	return r.DB.Create(video).Error
}

func (r *VideoRepository) List(limit, offset int) ([]model.Video, error) {
	var videos []model.Video
	err := r.DB.Limit(limit).Offset(offset).Order("created_at DESC").Find(&videos).Error
	return videos, err
}
