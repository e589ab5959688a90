package assets

import (
	"net/http"
	"strconv"

	"voting-app/database"
	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// POST /assets/ingest
//
// Records the metadata of an already-uploaded blob. The owner's
// name/department/supervisor are snapshotted onto the asset here and
// never refreshed afterwards.
func IngestAsset(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Kind        string  `json:"kind" binding:"required,oneof=image video"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		BlobPathRaw string  `json:"blobPathRaw" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var owner users.User
	if err := database.DB.First(&owner, userID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Complete profile first"})
		return
	}

	category := assets.CategoryImage
	if input.Kind == "video" {
		category = assets.CategoryVideo
	}

	asset := assets.Asset{
		Type:        category,
		Status:      assets.StatusApproved,
		Title:       input.Title,
		Description: input.Description,
		BlobPathRaw: input.BlobPathRaw,

		OwnerID:                 owner.ID,
		OwnerNameAtUpload:       owner.Name,
		OwnerDepartmentAtUpload: owner.Department,
		OwnerSupervisorAtUpload: owner.Supervisor,
	}
	if err := database.DB.Create(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save asset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": asset.ID})
}

// GET /feed?type=image|video&take=24&cursor=<asset id>
func GetFeed(c *gin.Context) {
	category, err := assets.ParseCategory(c.DefaultQuery("type", "image"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	take, err := strconv.Atoi(c.DefaultQuery("take", "24"))
	if err != nil || take < 1 {
		take = 24
	}
	if take > 100 {
		take = 100
	}

	q := database.DB.Model(&assets.Asset{}).
		Where("status = ? AND type = ?", assets.StatusApproved, category).
		Order("id ASC").
		Limit(take)
	if cursor := c.Query("cursor"); cursor != "" {
		q = q.Where("id > ?", cursor)
	}

	var items []assets.Asset
	if err := q.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}

	var nextCursor *string
	if len(items) == take {
		nextCursor = &items[len(items)-1].ID
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "nextCursor": nextCursor})
}
