package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxarisa/family-health-app/middlewares"
	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/services"
	"github.com/maxarisa/family-health-app/utils"
)

type GoalController struct {
	goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{goals: goals}
}

func goalID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, utils.NewValidationError("Invalid goal id")
	}
	return uint(id), nil
}

func (ctl *GoalController) Create(c *gin.Context) {
	var input services.CreateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	goal, err := ctl.goals.Create(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Goal created successfully", gin.H{"goal": goal})
}

func (ctl *GoalController) List(c *gin.Context) {
	status := models.GoalStatus(c.Query("status"))
	goals, err := ctl.goals.List(middlewares.CurrentUserID(c), status)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"goals": goals})
}

func (ctl *GoalController) Get(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	goal, err := ctl.goals.Get(middlewares.CurrentUserID(c), id)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"goal": goal})
}

func (ctl *GoalController) Update(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	var input services.UpdateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	goal, err := ctl.goals.Update(middlewares.CurrentUserID(c), id, input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Goal updated successfully", gin.H{"goal": goal})
}

func (ctl *GoalController) Delete(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	if err := ctl.goals.Delete(middlewares.CurrentUserID(c), id); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Goal deleted successfully", nil)
}

func (ctl *GoalController) Progress(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	progress, err := ctl.goals.Progress(middlewares.CurrentUserID(c), id)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"goalId":       progress.GoalID,
		"progress":     progress.Progress,
		"currentValue": progress.CurrentValue,
		"targetValue":  progress.TargetValue,
		"status":       progress.Status,
	})
}
