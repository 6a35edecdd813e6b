package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maxarisa/family-health-app/controllers"
	"github.com/maxarisa/family-health-app/middlewares"
	"github.com/maxarisa/family-health-app/services"
	"github.com/maxarisa/family-health-app/utils"
)

// SetupRouter wires services and controllers onto a gin engine. The
// mailer and uploader may be nil in environments without AWS access;
// the affected endpoints degrade to logged warnings or a 500.
func SetupRouter(db *gorm.DB, mailer utils.Mailer, uploader utils.Uploader) *gin.Engine {
	dashboardSvc := services.NewDashboardService(db)
	authSvc := services.NewAuthService(db, mailer)
	logSvc := services.NewHealthLogService(db, uploader)
	goalSvc := services.NewGoalService(db)
	familySvc := services.NewFamilyService(db, mailer, dashboardSvc)
	userSvc := services.NewUserService(db, familySvc)
	coachSvc := services.NewCoachService(db)
	reminderSvc := services.NewReminderService(db)

	authCtl := controllers.NewAuthController(authSvc)
	logCtl := controllers.NewHealthLogController(logSvc, dashboardSvc)
	goalCtl := controllers.NewGoalController(goalSvc)
	familyCtl := controllers.NewFamilyController(familySvc)
	userCtl := controllers.NewUserController(userSvc)
	coachCtl := controllers.NewCoachController(coachSvc)
	reminderCtl := controllers.NewReminderController(reminderSvc)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
		auth.POST("/verify-email", authCtl.VerifyEmail)
		auth.GET("/me", middlewares.AuthMiddleware(), authCtl.Me)
	}

	users := r.Group("/users")
	users.Use(middlewares.AuthMiddleware())
	{
		users.GET("/profile", userCtl.GetProfile)
		users.PUT("/profile", userCtl.UpdateProfile)
		users.PUT("/privacy", userCtl.UpdatePrivacySettings)
		users.PUT("/coach-preference", userCtl.UpdateCoachPreference)
		users.DELETE("", userCtl.DeleteAccount)

		users.POST("/reminders", reminderCtl.Create)
		users.GET("/reminders", reminderCtl.List)
		users.PUT("/reminders/:id", reminderCtl.Update)
		users.DELETE("/reminders/:id", reminderCtl.Delete)
	}

	logs := r.Group("/health-logs")
	logs.Use(middlewares.AuthMiddleware())
	{
		logs.POST("/water", logCtl.LogWater)
		logs.POST("/exercise", logCtl.LogExercise)
		logs.POST("/weight", logCtl.LogWeight)
		logs.POST("/sleep", logCtl.LogSleep)
		logs.POST("/blood-pressure", logCtl.LogBloodPressure)
		logs.POST("/heart-rate", logCtl.LogHeartRate)
		logs.POST("/temperature", logCtl.LogTemperature)
		logs.GET("", logCtl.List)
		logs.GET("/dashboard", logCtl.Dashboard)
		logs.GET("/export", logCtl.Export)
		logs.PUT("/:id", logCtl.Update)
		logs.DELETE("/:id", logCtl.Delete)
	}

	goals := r.Group("/goals")
	goals.Use(middlewares.AuthMiddleware())
	{
		goals.POST("", goalCtl.Create)
		goals.GET("", goalCtl.List)
		goals.GET("/:id", goalCtl.Get)
		goals.PUT("/:id", goalCtl.Update)
		goals.DELETE("/:id", goalCtl.Delete)
		goals.GET("/:id/progress", goalCtl.Progress)
	}

	families := r.Group("/families")
	families.Use(middlewares.AuthMiddleware())
	{
		families.POST("", familyCtl.Create)
		families.GET("/:id", familyCtl.Get)
		families.GET("/:id/dashboard", familyCtl.Dashboard)
		families.POST("/:id/invite", familyCtl.Invite)
		families.POST("/accept-invite/:token", familyCtl.AcceptInvite)
		families.DELETE("/:id/members/:memberId", familyCtl.RemoveMember)
		families.POST("/:id/leave", familyCtl.Leave)
	}

	coach := r.Group("/coach")
	coach.Use(middlewares.AuthMiddleware())
	{
		coach.GET("/daily-message", coachCtl.DailyMessage)
		coach.GET("/prompt", coachCtl.Prompt)
		coach.POST("/celebration", coachCtl.Celebration)
	}

	return r
}
