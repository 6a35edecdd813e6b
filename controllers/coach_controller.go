package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxarisa/family-health-app/middlewares"
	"github.com/maxarisa/family-health-app/services"
	"github.com/maxarisa/family-health-app/utils"
)

type CoachController struct {
	coach *services.CoachService
}

func NewCoachController(coach *services.CoachService) *CoachController {
	return &CoachController{coach: coach}
}

func (ctl *CoachController) DailyMessage(c *gin.Context) {
	msg, err := ctl.coach.DailyMessage(middlewares.CurrentUserID(c), time.Now())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"message": msg.Message,
		"type":    msg.Type,
	})
}

func (ctl *CoachController) Prompt(c *gin.Context) {
	context := c.Query("context")
	msg := ctl.coach.Prompt(context)
	utils.Success(c, http.StatusOK, gin.H{
		"message": msg.Message,
		"type":    msg.Type,
		"context": context,
	})
}

func (ctl *CoachController) Celebration(c *gin.Context) {
	var input struct {
		AchievementType string `json:"achievementType"`
		Value           string `json:"value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	msg := ctl.coach.Celebration(input.AchievementType, input.Value)
	utils.Success(c, http.StatusOK, gin.H{
		"message":         msg.Message,
		"type":            msg.Type,
		"achievementType": input.AchievementType,
	})
}
