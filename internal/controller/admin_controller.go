package controller

import (
	"errors"
	"strconv"

	"skillreel_backend/internal/model"
	"skillreel_backend/internal/service"
	"skillreel_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	ContentService *service.ContentService
}

func NewAdminController(contentService *service.ContentService) *AdminController {
	return &AdminController{ContentService: contentService}
}

// @Summary 创建主题分段
// @Description 为视频时间轴添加一条带权重的主题分段（管理员权限）
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Param segment body model.VideoTopicSegment true "主题分段"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/videos/{id}/segments [post]
func (c *AdminController) CreateSegment(ctx *gin.Context) {
	var req struct {
		Tag      string  `json:"tag" binding:"required"`
		Weight   int     `json:"weight" binding:"required,min=1"`
		StartPct float64 `json:"startPct"`
		EndPct   float64 `json:"endPct" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	segment := &model.VideoTopicSegment{
		VideoID:  ctx.Param("id"),
		Tag:      req.Tag,
		Weight:   req.Weight,
		StartPct: req.StartPct,
		EndPct:   req.EndPct,
	}

	err := c.ContentService.CreateSegment(ctx.Request.Context(), segment)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrVideoNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidSegment):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, segment)
}

// @Summary 查看视频的主题分段
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Success 200 {object} util.Response
// @Router /api/admin/videos/{id}/segments [get]
func (c *AdminController) ListSegments(ctx *gin.Context) {
	segments, err := c.ContentService.ListSegments(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, segments)
}

// @Summary 删除主题分段
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Param segmentId path int true "分段ID"
// @Success 200 {object} util.Response
// @Router /api/admin/videos/{id}/segments/{segmentId} [delete]
func (c *AdminController) DeleteSegment(ctx *gin.Context) {
	segmentID, err := strconv.ParseUint(ctx.Param("segmentId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的分段ID")
		return
	}

	if err := c.ContentService.DeleteSegment(ctx.Request.Context(), ctx.Param("id"), uint(segmentID)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "分段已删除"})
}

// @Summary 录入测验题
// @Description 写入出题流水线生成的题目，单视频最多 6 题，创建后不可修改
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Param question body model.QuizQuestion true "测验题"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/videos/{id}/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req struct {
		LessonNumber int    `json:"lessonNumber" binding:"required,min=1"`
		SkillTag     string `json:"skillTag" binding:"required"`
		QuestionText string `json:"questionText" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question := &model.QuizQuestion{
		VideoID:      ctx.Param("id"),
		LessonNumber: req.LessonNumber,
		SkillTag:     req.SkillTag,
		QuestionText: req.QuestionText,
	}

	err := c.ContentService.CreateQuestion(question)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrVideoNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionLimit):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// @Summary 创建视频
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param video body model.Video true "视频"
// @Success 201 {object} util.Response
// @Router /api/admin/videos [post]
func (c *AdminController) CreateVideo(ctx *gin.Context) {
	var video model.Video
	if err := ctx.ShouldBindJSON(&video); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if video.DurationSeconds <= 0 {
		util.BadRequest(ctx, "视频时长必须为正数")
		return
	}

	if err := c.ContentService.CreateVideo(&video); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, video)
}

// @Summary 视频列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param limit query int false "分页大小，默认 20"
// @Param offset query int false "偏移量"
// @Success 200 {object} util.Response
// @Router /api/admin/videos [get]
func (c *AdminController) ListVideos(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	videos, err := c.ContentService.ListVideos(limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// @Summary 创建频道
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param channel body model.Channel true "频道"
// @Success 201 {object} util.Response
// @Router /api/admin/channels [post]
func (c *AdminController) CreateChannel(ctx *gin.Context) {
	var channel model.Channel
	if err := ctx.ShouldBindJSON(&channel); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.CreateChannel(&channel); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, channel)
}
