package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Every response uses the {status, data?, message?} envelope.

func Success(c *gin.Context, code int, data gin.H) {
	body := gin.H{"status": "success"}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

func SuccessMessage(c *gin.Context, code int, message string, data gin.H) {
	body := gin.H{"status": "success", "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

// Fail converts err to its envelope. Untyped errors are logged and
// answered with a generic 500 so internals never leak to the client.
func Fail(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		c.JSON(appErr.Status, gin.H{"status": "error", "message": appErr.Message})
		return
	}
	logrus.WithFields(logrus.Fields{
		"route": c.FullPath(),
		"error": err.Error(),
	}).Error("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "Internal server error",
	})
}
