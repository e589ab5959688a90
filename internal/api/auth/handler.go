package auth

import (
	"errors"
	"net/http"
	"time"

	"voting-app/config"
	"voting-app/database"
	"voting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func issueSessionToken(user users.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	return token.SignedString([]byte(config.JWT_SECRET))
}

// upsertUser finds or creates the account for an authenticated email.
// The display name is only filled in when the account has none yet;
// profile edits go through the profile endpoint.
func upsertUser(email, name string) (users.User, error) {
	var user users.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = users.User{Email: email, Name: name}
		if err := database.DB.Create(&user).Error; err != nil {
			return users.User{}, err
		}
		return user, nil
	}
	if err != nil {
		return users.User{}, err
	}
	if user.Name == "" && name != "" {
		user.Name = name
		if err := database.DB.Save(&user).Error; err != nil {
			return users.User{}, err
		}
	}
	return user, nil
}

// POST /auth/demo
//
// Name-and-email sign-in, only available in demo mode.
func DemoLogin(c *gin.Context) {
	if !config.DEMO_MODE {
		c.JSON(http.StatusNotFound, gin.H{"error": "Demo sign-in disabled"})
		return
	}

	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := upsertUser(input.Email, input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	tokenString, err := issueSessionToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}
