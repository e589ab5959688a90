package admin

import (
	"net/http"

	"voting-app/database"
	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func topByLikes(category assets.Category, take int) ([]assets.Asset, error) {
	var out []assets.Asset
	err := database.DB.
		Where("status = ? AND type = ?", assets.StatusApproved, category).
		Order("like_count DESC").
		Limit(take).
		Find(&out).Error
	return out, err
}

// GET /admin/leaderboard
func Leaderboard(c *gin.Context) {
	images, err := topByLikes(assets.CategoryImage, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	videos, err := topByLikes(assets.CategoryVideo, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"images": images,
		"videos": videos,
	})
}

// GET /admin/users
func ListUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("created_at ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": all})
}
