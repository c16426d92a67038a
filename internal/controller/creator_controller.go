package controller

import (
	"skillreel_backend/internal/service"
	"skillreel_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CreatorController struct {
	CreatorService *service.CreatorService
}

func NewCreatorController(creatorService *service.CreatorService) *CreatorController {
	return &CreatorController{CreatorService: creatorService}
}

// @Summary 创作者观看统计
// @Description 返回调用者名下所有频道的观众观看时长统计
// @Tags 创作者
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/creator/watch-stats [get]
func (c *CreatorController) WatchStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.CreatorService.WatchStats(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
