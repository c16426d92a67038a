package controller

import (
	"errors"

	"skillreel_backend/internal/service"
	"skillreel_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WatchController struct {
	WatchService *service.WatchService
}

func NewWatchController(watchService *service.WatchService) *WatchController {
	return &WatchController{WatchService: watchService}
}

// @Summary 上报观看进度
// @Description 客户端计时器每 ~30 秒及会话结束时上报，服务端折算兴趣分与创作者观看时长
// @Tags 观看
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param report body service.WatchReport true "观看上报"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/watch/report [post]
func (c *WatchController) Report(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var report service.WatchReport
	if err := ctx.ShouldBindJSON(&report); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.WatchService.ProcessReport(ctx.Request.Context(), user.UserID, &report)
	if err != nil {
		if errors.Is(err, util.ErrInvalidReport) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 我的兴趣分
// @Description 按分数降序返回用户的全部主题兴趣分
// @Tags 观看
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/interests [get]
func (c *WatchController) ListInterests(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	scores, err := c.WatchService.ListInterests(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, scores)
}
