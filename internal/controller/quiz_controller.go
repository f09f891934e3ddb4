package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"learnhub_client/internal/service"
	"learnhub_client/internal/util"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

func (c *QuizController) GetDefinition(ctx *gin.Context) {
	definition, err := c.Service.Definition(ctx.Param("moduleId"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, definition)
}

func (c *QuizController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.Service.StartAttempt(claims.UserID, ctx.Param("moduleId"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

type submitAttemptRequest struct {
	Answers map[int]int `json:"answers"`
}

func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitAttempt(claims.UserID, ctx.Param("moduleId"), ctx.Param("attemptId"), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptSubmitted):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrAttemptExpired):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
