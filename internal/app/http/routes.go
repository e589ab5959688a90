package routes

import (
	"voting-app/config"
	"voting-app/database"
	adminapi "voting-app/internal/api/admin"
	assetsapi "voting-app/internal/api/assets"
	authapi "voting-app/internal/api/auth"
	ballotapi "voting-app/internal/api/ballot"
	usersapi "voting-app/internal/api/users"
	"voting-app/internal/app/http/middleware"
	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/voting"
	"voting-app/internal/storage/votestore"

	"github.com/gin-gonic/gin"
)

func categoryOpen(category assets.Category) bool {
	if category == assets.CategoryImage {
		return config.PHOTOS_LIVE
	}
	return config.VIDEOS_LIVE
}

func RegisterRoutes(r *gin.Engine) {
	ctrl := voting.NewController(votestore.New(database.DB), categoryOpen)
	ballotHandler := ballotapi.NewHandler(ctrl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/feed", assetsapi.GetFeed)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/auth/demo", authapi.DemoLogin)
	public.GET("/auth/oidc", authapi.OIDCStart)
	public.GET("/auth/oidc/callback", authapi.OIDCCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/profile", usersapi.UpsertProfile)
	auth.POST("/upload/sas", assetsapi.CreateUploadURL)

	// Routes that write on the user's behalf require a completed
	// profile (display name set).
	voter := auth.Group("/")
	voter.Use(middleware.RequireCompleteProfile())
	voter.POST("/assets/ingest", assetsapi.IngestAsset)
	voter.GET("/ballot", ballotHandler.GetBallot)
	voter.PATCH("/ballot", ballotHandler.MutateBallot)
	voter.POST("/ballot/submit", ballotHandler.SubmitBallot)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	admin.GET("/leaderboard", adminapi.Leaderboard)
	admin.GET("/users", adminapi.ListUsers)
}
