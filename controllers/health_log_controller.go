package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxarisa/family-health-app/middlewares"
	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/services"
	"github.com/maxarisa/family-health-app/utils"
)

type HealthLogController struct {
	logs       *services.HealthLogService
	dashboards *services.DashboardService
}

func NewHealthLogController(logs *services.HealthLogService, dashboards *services.DashboardService) *HealthLogController {
	return &HealthLogController{logs: logs, dashboards: dashboards}
}

func (ctl *HealthLogController) LogWater(c *gin.Context) {
	var input services.WaterLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	log, err := ctl.logs.LogWater(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Water intake logged successfully", gin.H{"log": log})
}

func (ctl *HealthLogController) LogExercise(c *gin.Context) {
	var input services.ExerciseLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	log, err := ctl.logs.LogExercise(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Exercise logged successfully", gin.H{"log": log})
}

func (ctl *HealthLogController) LogWeight(c *gin.Context) {
	var input services.WeightLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	log, err := ctl.logs.LogWeight(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Weight logged successfully", gin.H{"log": log})
}

func (ctl *HealthLogController) LogSleep(c *gin.Context) {
	var input services.SleepLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	log, err := ctl.logs.LogSleep(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Sleep logged successfully", gin.H{"log": log})
}

func (ctl *HealthLogController) LogBloodPressure(c *gin.Context) {
	var input services.BloodPressureLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	log, err := ctl.logs.LogBloodPressure(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Blood pressure logged successfully", gin.H{"log": log})
}

func (ctl *HealthLogController) LogHeartRate(c *gin.Context) {
	var input services.HeartRateLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	log, err := ctl.logs.LogHeartRate(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Heart rate logged successfully", gin.H{"log": log})
}

func (ctl *HealthLogController) LogTemperature(c *gin.Context) {
	var input services.TemperatureLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	log, err := ctl.logs.LogTemperature(middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusCreated, "Temperature logged successfully", gin.H{"log": log})
}

func (ctl *HealthLogController) List(c *gin.Context) {
	filter := services.LogFilter{
		Kind: models.MetricKind(c.Query("type")),
	}

	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			if t, err = time.Parse("2006-01-02", v); err != nil {
				utils.Fail(c, utils.NewValidationError("Invalid startDate"))
				return
			}
		}
		filter.Start = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			if t, err = time.Parse("2006-01-02", v); err != nil {
				utils.Fail(c, utils.NewValidationError("Invalid endDate"))
				return
			}
		}
		filter.End = &t
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.Fail(c, utils.NewValidationError("Invalid limit"))
			return
		}
		filter.Limit = n
	}

	logs, err := ctl.logs.List(middlewares.CurrentUserID(c), filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"logs": logs})
}

func (ctl *HealthLogController) Dashboard(c *gin.Context) {
	summary, err := ctl.dashboards.Summary(middlewares.CurrentUserID(c), time.Now())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"water":      summary.Water,
		"exercise":   summary.Exercise,
		"weight":     summary.Weight,
		"sleep":      summary.Sleep,
		"vitalSigns": summary.VitalSigns,
		"streaks":    summary.Streaks,
	})
}

// logRef resolves the :id param plus the required type query; ids are
// only unique within a kind's table.
func logRef(c *gin.Context) (models.MetricKind, uint, error) {
	kind := models.MetricKind(c.Query("type"))
	if kind == "" {
		return "", 0, utils.NewValidationError("The 'type' query parameter is required")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return "", 0, utils.NewValidationError("Invalid log id")
	}
	return kind, uint(id), nil
}

func (ctl *HealthLogController) Update(c *gin.Context) {
	kind, id, err := logRef(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	var input services.LogUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, utils.NewValidationError(err.Error()))
		return
	}

	log, err := ctl.logs.Update(middlewares.CurrentUserID(c), kind, id, input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Health log updated successfully", gin.H{"log": log})
}

func (ctl *HealthLogController) Delete(c *gin.Context) {
	kind, id, err := logRef(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	if err := ctl.logs.Delete(middlewares.CurrentUserID(c), kind, id); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.SuccessMessage(c, http.StatusOK, "Health log deleted successfully", nil)
}

func (ctl *HealthLogController) Export(c *gin.Context) {
	url, err := ctl.logs.Export(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"url": url})
}
