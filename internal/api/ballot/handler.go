package ballot

import (
	"errors"
	"log"
	"net/http"

	"voting-app/internal/domain/assets"
	"voting-app/internal/domain/voting"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctrl *voting.Controller
}

func NewHandler(ctrl *voting.Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func respondVotingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, voting.ErrAssetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
	case errors.Is(err, voting.ErrLimitExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit reached (5)"})
	case errors.Is(err, voting.ErrVotingClosed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Voting closed for this category"})
	case errors.Is(err, voting.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "Already submitted"})
	case errors.Is(err, voting.ErrEmptyBallot):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty ballot"})
	case errors.Is(err, voting.ErrOverLimit):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Over limit"})
	default:
		log.Println("ballot storage error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// GET /ballot?category=IMAGE|VIDEO
func (h *Handler) GetBallot(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	category, err := assets.ParseCategory(c.DefaultQuery("category", string(assets.CategoryImage)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.ctrl.GetOrCreateDraft(userID, category)
	if err != nil {
		respondVotingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ballot": b})
}

// PATCH /ballot
func (h *Handler) MutateBallot(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		Category string `json:"category" binding:"required"`
		AssetID  string `json:"assetId" binding:"required"`
		Action   string `json:"action" binding:"required,oneof=add remove"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := assets.ParseCategory(input.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var b *voting.Ballot
	if input.Action == "add" {
		b, err = h.ctrl.AddItem(userID, category, input.AssetID)
	} else {
		b, err = h.ctrl.RemoveItem(userID, category, input.AssetID)
	}
	if err != nil {
		respondVotingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ballot": b})
}

// POST /ballot/submit
func (h *Handler) SubmitBallot(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := assets.ParseCategory(input.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ctrl.Submit(userID, category); err != nil {
		respondVotingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
