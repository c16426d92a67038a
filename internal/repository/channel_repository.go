package repository

import (
	"errors"

	"skillreel_backend/internal/model"
	"skillreel_backend/internal/util"

	"gorm.io/gorm"
)

type ChannelRepository struct {
	DB *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{DB: db}
}

func (r *ChannelRepository) FindByID(channelID string) (*model.Channel, error) {
	var channel model.Channel
	err := r.DB.First(&channel, "id = ?", channelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChannelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepository) Create(channel *model.Channel) error {
	return r.DB.Create(channel).Error
}

func (r *ChannelRepository) ListByCreator(creatorUserID string) ([]model.Channel, error) {
	var channels []model.Channel
	err := r.DB.Where("creator_user_id = ?", creatorUserID).Find(&channels).Error
	return channels, err
}
