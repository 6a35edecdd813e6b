package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxarisa/family-health-app/middlewares"
	"github.com/maxarisa/family-health-app/services"
	"github.com/maxarisa/family-health-app/utils"
)

type FamilyController struct {
	families *services.FamilyService
}

func NewFamilyController(families *services.FamilyService) *FamilyController {
	return &FamilyController{families: families}
}

func familyID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, utils.NewValidationError("Invalid family id")
	}
	return uint(id), nil
}

func (ctl *FamilyController) Create(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	family, err := ctl.families.Create(middlewares.CurrentUserID(c), input.Name)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Family group created successfully", gin.H{"family": family})
}

func (ctl *FamilyController) Get(c *gin.Context) {
	id, err := familyID(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	family, err := ctl.families.Get(middlewares.CurrentUserID(c), id)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"family": family})
}

func (ctl *FamilyController) Dashboard(c *gin.Context) {
	id, err := familyID(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	members, err := ctl.families.Dashboard(middlewares.CurrentUserID(c), id, time.Now())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"dashboard": gin.H{
			"familyId": id,
			"members":  members,
		},
	})
}

func (ctl *FamilyController) Invite(c *gin.Context) {
	id, err := familyID(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	invite, err := ctl.families.Invite(middlewares.CurrentUserID(c), id, input.Email)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK,
		fmt.Sprintf("Invitation sent to %s", invite.Email), nil)
}

func (ctl *FamilyController) AcceptInvite(c *gin.Context) {
	token := c.Param("token")
	email := c.MustGet("email").(string)

	family, err := ctl.families.AcceptInvite(middlewares.CurrentUserID(c), email, token)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "You have joined the family group", gin.H{"family": family})
}

func (ctl *FamilyController) RemoveMember(c *gin.Context) {
	id, err := familyID(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	memberID, err := strconv.ParseUint(c.Param("memberId"), 10, 32)
	if err != nil {
		utils.Fail(c, utils.NewValidationError("Invalid member id"))
		return
	}

	if err := ctl.families.RemoveMember(middlewares.CurrentUserID(c), id, uint(memberID)); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Member removed from family", nil)
}

func (ctl *FamilyController) Leave(c *gin.Context) {
	id, err := familyID(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	if err := ctl.families.Leave(middlewares.CurrentUserID(c), id); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "You have left the family group", nil)
}
