package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrPermissionDenied = errors.New("permission denied")
	ErrVideoNotFound    = errors.New("video not found")
	ErrChannelNotFound  = errors.New("channel not found")
	ErrSkillNotFound    = errors.New("skill entry not found")
	ErrInvalidReport    = errors.New("invalid watch report")
	ErrQuestionLimit    = errors.New("question limit reached for this video (max 6)")
	ErrQuestionNotFound = errors.New("quiz question not found")
	ErrInvalidBatch     = errors.New("invalid question batch index")
	ErrInvalidSegment   = errors.New("invalid topic segment range")
)
