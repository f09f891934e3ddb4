package controller

import (
	"time"

	"github.com/gin-gonic/gin"

	"learnhub_client/internal/util"
)

type HealthController struct {
	startedAt time.Time
}

func NewHealthController() *HealthController {
	return &HealthController{startedAt: time.Now()}
}

func (c *HealthController) Health(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status": "ok",
		"uptime": time.Since(c.startedAt).String(),
	})
}
