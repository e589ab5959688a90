package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/users"
	"voting-app/internal/testutil"
)

func setupRouter(t *testing.T, userID uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.POST("/assets/ingest", IngestAsset)
	r.GET("/feed", GetFeed)
	return r
}

func TestIngestSnapshotsOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)

	dept := "Engineering"
	owner := users.User{Email: "kim@example.com", Name: "Kim", Department: &dept}
	require.NoError(t, db.Create(&owner).Error)

	r := setupRouter(t, owner.ID)

	body, _ := json.Marshal(gin.H{
		"kind":        "image",
		"title":       "Sunset",
		"blobPathRaw": "raw-images/abc.jpeg",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/assets/ingest", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)

	// Edit the profile after upload; the snapshot on the asset must not
	// move.
	owner.Name = "Kimberly"
	require.NoError(t, db.Save(&owner).Error)

	var a assets.Asset
	require.NoError(t, db.First(&a, "id = ?", resp.ID).Error)
	assert.Equal(t, assets.CategoryImage, a.Type)
	assert.Equal(t, assets.StatusApproved, a.Status)
	assert.Equal(t, "Kim", a.OwnerNameAtUpload)
	require.NotNil(t, a.OwnerDepartmentAtUpload)
	assert.Equal(t, "Engineering", *a.OwnerDepartmentAtUpload)
	assert.Zero(t, a.LikeCount)
}

func TestIngestRejectsBadKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := users.User{Email: "kim@example.com", Name: "Kim"}
	require.NoError(t, db.Create(&owner).Error)
	r := setupRouter(t, owner.ID)

	body, _ := json.Marshal(gin.H{"kind": "audio", "blobPathRaw": "x"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/assets/ingest", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedFiltersAndPaginates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := setupRouter(t, 1)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&assets.Asset{
			ID:   fmt.Sprintf("p%d", i),
			Type: assets.CategoryImage, Status: assets.StatusApproved,
			BlobPathRaw: "raw", OwnerID: 1, OwnerNameAtUpload: "Kim",
		}).Error)
	}
	require.NoError(t, db.Create(&assets.Asset{
		ID:   "v0",
		Type: assets.CategoryVideo, Status: assets.StatusApproved,
		BlobPathRaw: "raw", OwnerID: 1, OwnerNameAtUpload: "Kim",
	}).Error)
	require.NoError(t, db.Create(&assets.Asset{
		ID:   "rejected",
		Type: assets.CategoryImage, Status: assets.StatusRejected,
		BlobPathRaw: "raw", OwnerID: 1, OwnerNameAtUpload: "Kim",
	}).Error)

	var resp struct {
		Items      []assets.Asset `json:"items"`
		NextCursor *string        `json:"nextCursor"`
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed?type=image&take=2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	require.NotNil(t, resp.NextCursor)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed?type=image&take=2&cursor="+*resp.NextCursor, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.NextCursor)

	// Only approved images ever show up.
	for _, it := range resp.Items {
		assert.Equal(t, assets.CategoryImage, it.Type)
		assert.NotEqual(t, "rejected", it.ID)
	}
}
