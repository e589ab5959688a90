package users

import (
	"errors"
	"net/http"

	"voting-app/database"
	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func countCategoryVotes(userID uint, category assets.Category) (int64, error) {
	var n int64
	err := database.DB.Table("votes").
		Joins("JOIN assets ON assets.id = votes.asset_id").
		Where("votes.user_id = ? AND assets.type = ?", userID, category).
		Count(&n).Error
	return n, err
}

// GET /me
func GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"user": nil})
		return
	}

	imagesSubmitted, err := countCategoryVotes(user.ID, assets.CategoryImage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load votes"})
		return
	}
	videosSubmitted, err := countCategoryVotes(user.ID, assets.CategoryVideo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load votes"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Department: user.Department,
			Supervisor: user.Supervisor,
			IsAdmin:    user.IsAdmin,
		},
		Votes: VotesDTO{
			ImagesSubmitted: imagesSubmitted,
			VideosSubmitted: videosSubmitted,
		},
	})
}

// POST /profile
//
// Sets the display name, completing the profile. The sign-in form may
// also send department/supervisor; those are ignored here.
func UpsertProfile(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = users.User{Email: email, Name: input.Name}
		if err := database.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	default:
		user.Name = input.Name
		if err := database.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Department: user.Department,
		Supervisor: user.Supervisor,
		IsAdmin:    user.IsAdmin,
	}})
}
