package assets

import (
	"log"
	"net/http"
	"strings"

	"voting-app/config"
	"voting-app/internal/infra/blob"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /upload/sas
//
// Issues a time-limited signed PUT URL the client uploads the raw file
// to. The server never touches the bytes; ingestion happens afterwards
// against the resulting object path.
func CreateUploadURL(c *gin.Context) {
	if config.GCS_BUCKET == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Upload storage not configured"})
		return
	}

	var input struct {
		Kind string `json:"kind" binding:"required,oneof=image video"`
		Mime string `json:"mime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ext := "bin"
	if parts := strings.SplitN(input.Mime, "/", 2); len(parts) == 2 && parts[1] != "" {
		ext = parts[1]
	}

	prefix := "raw-images"
	if input.Kind == "video" {
		prefix = "raw-videos"
	}
	object := prefix + "/" + uuid.NewString() + "." + ext

	uploadURL, err := blob.SignedUploadURL(config.GCS_BUCKET, object, input.Mime)
	if err != nil {
		log.Println("signed URL error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"bucket":    config.GCS_BUCKET,
		"blobName":  object,
	})
}
