package middleware

import (
	"net/http"

	"voting-app/database"
	"voting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireCompleteProfile blocks ballot mutation and uploads until the
// user has set a display name. The asset owner snapshot needs a name
// to copy, so this gate sits upstream of both.
func RequireCompleteProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		var user users.User

		if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Complete profile first",
			})
			return
		}
		if !user.ProfileComplete() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Complete profile first",
			})
			return
		}

		c.Set("user_id", user.ID)
		c.Next()
	}
}
