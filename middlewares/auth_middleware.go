package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxarisa/family-health-app/utils"
)

// AuthMiddleware validates the bearer token and stores the caller's
// id and email on the context. Any absence or invalidity answers 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authorization header required",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, email, err := utils.ParseJWT(tokenString)
		if err != nil {
			if appErr, ok := utils.AsAppError(err); ok {
				c.AbortWithStatusJSON(appErr.Status, gin.H{
					"status":  "error",
					"message": appErr.Message,
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "invalid token",
			})
			return
		}

		c.Set("userID", userID)
		c.Set("email", email)
		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by AuthMiddleware.
func CurrentUserID(c *gin.Context) uint {
	return c.MustGet("userID").(uint)
}
