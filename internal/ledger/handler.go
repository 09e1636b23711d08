package ledger

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/auth"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/cache"
)

type Handler struct {
	repo  Repository
	cache *cache.BalanceCache
}

func NewHandler(repo Repository, balanceCache *cache.BalanceCache) *Handler {
	return &Handler{
		repo:  repo,
		cache: balanceCache,
	}
}

type BalanceResponse struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
	Cached bool   `json:"cached"`
}

// GetBalance godoc
// @Summary      Current point balance
// @Description  Returns the user's points, served from the display cache when fresh.
// @Tags         points
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} BalanceResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /points [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if points, hit := h.cache.Get(c.Request.Context(), userID); hit {
		c.JSON(http.StatusOK, BalanceResponse{UserID: userID, Points: points, Cached: true})
		return
	}

	b, err := h.repo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load balance"})
		return
	}

	h.cache.Set(c.Request.Context(), userID, b.Points)

	c.JSON(http.StatusOK, BalanceResponse{UserID: userID, Points: b.Points})
}

// GetHistory godoc
// @Summary      Point history
// @Description  Append-only audit trail of balance changes, newest first.
// @Tags         points
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query int false "Page size"  default(50)
// @Param        offset query int false "Page offset" default(0)
// @Success      200 {array} HistoryEntry
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /points/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.repo.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	if entries == nil {
		entries = []HistoryEntry{}
	}

	c.JSON(http.StatusOK, entries)
}
