package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voting-app/internal/domain/assets"
	"voting-app/internal/testutil"
)

func TestLeaderboardOrdersByLikes(t *testing.T) {
	db := testutil.SetupTestDB(t)

	likes := []int64{3, 9, 1}
	for i, n := range likes {
		require.NoError(t, db.Create(&assets.Asset{
			ID:   fmt.Sprintf("p%d", i),
			Type: assets.CategoryImage, Status: assets.StatusApproved,
			BlobPathRaw: "raw", OwnerID: 1, OwnerNameAtUpload: "Kim",
			LikeCount: n,
		}).Error)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/leaderboard", Leaderboard)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/leaderboard", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Images []assets.Asset `json:"images"`
		Videos []assets.Asset `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Images, 3)
	assert.Equal(t, "p1", resp.Images[0].ID)
	assert.Equal(t, "p0", resp.Images[1].ID)
	assert.Equal(t, "p2", resp.Images[2].ID)
	assert.Empty(t, resp.Videos)
}
