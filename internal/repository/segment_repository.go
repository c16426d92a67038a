package repository

import (
	"skillreel_backend/internal/model"
	"skillreel_backend/internal/util"

	"gorm.io/gorm"
)

type SegmentRepository struct {
	DB *gorm.DB
}

func NewSegmentRepository(db *gorm.DB) *SegmentRepository {
	return &SegmentRepository{DB: db}
}

func (r *SegmentRepository) FindByVideo(videoID string) ([]model.VideoTopicSegment, error) {
	var segments []model.VideoTopicSegment
	err := r.DB.Where("video_id = ?", videoID).Order("start_pct ASC").Find(&segments).Error
	return segments, err
}

func (r *SegmentRepository) Create(segment *model.VideoTopicSegment) error {
	if segment.StartPct < 0 || segment.EndPct > 100 || segment.StartPct >= segment.EndPct {
		return util.ErrInvalidSegment
	}
	return r.DB.Create(segment).Error
}

func (r *SegmentRepository) Delete(videoID string, segmentID uint) error {
	return r.DB.Where("video_id = ?", videoID).Delete(&model.VideoTopicSegment{}, segmentID).Error
}
