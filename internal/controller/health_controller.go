package controller

import (
	"github.com/gin-gonic/gin"

	"skillreel_backend/internal/util"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	util.Success(ctx, gin.H{"status": "ok"})
}
