package controller

import (
	"errors"

	"skillreel_backend/internal/service"
	"skillreel_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

// @Summary 我的技能档案
// @Description 按技能分降序返回用户的全部主题技能条目
// @Tags 技能
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.SkillService.ListSkills(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// @Summary 单个主题的技能条目
// @Description 主题名在查询前做与写入相同的归一化
// @Tags 技能
// @Produce json
// @Security BearerAuth
// @Param topic path string true "主题名"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/skills/{topic} [get]
func (c *SkillController) GetSkill(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	entry, err := c.SkillService.GetSkill(user.UserID, ctx.Param("topic"))
	if err != nil {
		if errors.Is(err, util.ErrSkillNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}
