package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxarisa/family-health-app/middlewares"
	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/services"
	"github.com/maxarisa/family-health-app/utils"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (ctl *UserController) GetProfile(c *gin.Context) {
	profile, err := ctl.users.GetProfile(middlewares.CurrentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"user":            profile.User,
		"privacySettings": profile.PrivacySettings,
	})
}

func (ctl *UserController) UpdateProfile(c *gin.Context) {
	var input services.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	user, err := ctl.users.UpdateProfile(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}

func (ctl *UserController) UpdatePrivacySettings(c *gin.Context) {
	var input services.UpdatePrivacyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	settings, err := ctl.users.UpdatePrivacySettings(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Privacy settings updated successfully",
		gin.H{"privacySettings": settings})
}

func (ctl *UserController) UpdateCoachPreference(c *gin.Context) {
	var input struct {
		CoachStyle models.CoachStyle `json:"coachStyle"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	user, err := ctl.users.UpdateCoachStyle(middlewares.CurrentUserID(c), input.CoachStyle)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Coach preference updated successfully", gin.H{"user": user})
}

func (ctl *UserController) DeleteAccount(c *gin.Context) {
	if err := ctl.users.DeleteAccount(middlewares.CurrentUserID(c)); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Account deleted successfully", nil)
}
