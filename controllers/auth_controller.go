package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxarisa/family-health-app/middlewares"
	"github.com/maxarisa/family-health-app/services"
	"github.com/maxarisa/family-health-app/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ctl *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	user, token, err := ctl.auth.Register(input)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.SuccessMessage(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	user, token, err := ctl.auth.Login(input.Email, input.Password)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.SuccessMessage(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

func (ctl *AuthController) Me(c *gin.Context) {
	user, err := ctl.auth.Me(middlewares.CurrentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"user": user})
}

func (ctl *AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError("Invalid request"))
		return
	}

	if err := ctl.auth.RequestPasswordReset(input.Email); err != nil {
		utils.Fail(c, err)
		return
	}

	// Same answer whether or not the account exists.
	utils.SuccessMessage(c, http.StatusOK,
		"If an account with that email exists, we have sent a password reset code.", nil)
}

func (ctl *AuthController) ResetPassword(c *gin.Context) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError("Invalid request"))
		return
	}

	if err := ctl.auth.ResetPassword(input.Token, input.Password); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Password reset successful", nil)
}

func (ctl *AuthController) VerifyEmail(c *gin.Context) {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError("Invalid request"))
		return
	}

	if err := ctl.auth.VerifyEmail(input.Token); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Email verified successfully", nil)
}
