package controller

import (
	"errors"
	"strconv"

	"skillreel_backend/internal/service"
	"skillreel_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary 获取测验题目批次
// @Description 按批返回视频的测验题，每批最多 3 题；batch 从 0 开始
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param batch query int false "批次号，默认 0"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/videos/{videoId}/quiz/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	videoID := ctx.Param("videoId")

	batchIndex := 0
	if raw := ctx.Query("batch"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "无效的批次号")
			return
		}
		batchIndex = parsed
	}

	batch, err := c.QuizService.GetQuestionBatch(videoID, batchIndex)
	if err != nil {
		if errors.Is(err, util.ErrInvalidBatch) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, batch)
}

// @Summary 提交测验答案
// @Description 调用外部模型判题并写入答题流水；判题服务故障时返回宽松兜底结论
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission body service.SubmitRequest true "答案提交"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitAnswer(user.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
