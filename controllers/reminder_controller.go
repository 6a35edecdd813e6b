package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxarisa/family-health-app/middlewares"
	"github.com/maxarisa/family-health-app/services"
	"github.com/maxarisa/family-health-app/utils"
)

type ReminderController struct {
	reminders *services.ReminderService
}

func NewReminderController(reminders *services.ReminderService) *ReminderController {
	return &ReminderController{reminders: reminders}
}

func (ctl *ReminderController) Create(c *gin.Context) {
	var input services.ReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	reminder, err := ctl.reminders.Create(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Reminder created successfully", gin.H{"reminder": reminder})
}

func (ctl *ReminderController) List(c *gin.Context) {
	reminders, err := ctl.reminders.List(middlewares.CurrentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"reminders": reminders})
}

func (ctl *ReminderController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Fail(c, utils.NewValidationError("Invalid reminder id"))
		return
	}

	var input services.ReminderUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	reminder, err := ctl.reminders.Update(middlewares.CurrentUserID(c), uint(id), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Reminder updated successfully", gin.H{"reminder": reminder})
}

func (ctl *ReminderController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Fail(c, utils.NewValidationError("Invalid reminder id"))
		return
	}

	if err := ctl.reminders.Delete(middlewares.CurrentUserID(c), uint(id)); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Reminder deleted successfully", nil)
}
