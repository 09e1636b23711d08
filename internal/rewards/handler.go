package rewards

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/auth"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/metrics"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type WatchAdRequest struct {
	WatchedSeconds int `json:"watched_seconds" binding:"required,gte=1"`
}

// WatchAd godoc
// @Summary      Claim the simulated ad-view reward
// @Tags         rewards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body WatchAdRequest true "Client-reported watch duration"
// @Success      200 {object} gin.H
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /rewards/ad [post]
func (h *Handler) WatchAd(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req WatchAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "watched_seconds must be a positive integer"})
		return
	}

	reward, balance, err := h.svc.WatchAd(c.Request.Context(), userID, req.WatchedSeconds)
	if err != nil {
		if errors.Is(err, ErrWatchTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ad was not watched long enough"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to credit ad reward"})
		return
	}

	metrics.RecordCredit("ad")

	c.JSON(http.StatusOK, gin.H{
		"reward":  reward,
		"balance": balance,
	})
}

// ClaimDaily godoc
// @Summary      Claim the daily reward
// @Description  At most one credit per calendar date. A same-day repeat responds 200 with claimed=false.
// @Tags         rewards
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} gin.H
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /rewards/daily [post]
func (h *Handler) ClaimDaily(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	claimed, balance, err := h.svc.ClaimDaily(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to claim daily reward"})
		return
	}

	if claimed {
		metrics.RecordCredit("daily")
		metrics.RecordDailyClaim("claimed")
	} else {
		metrics.RecordDailyClaim("already_claimed")
	}

	c.JSON(http.StatusOK, gin.H{
		"claimed": claimed,
		"balance": balance,
	})
}

// SpinWheel godoc
// @Summary      Spin the prize wheel
// @Description  Rolls the rotation server side so the animation and the credited amount always agree.
// @Tags         rewards
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} SpinResult
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /wheel/spin [post]
func (h *Handler) SpinWheel(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.svc.SpinWheel(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to spin the wheel"})
		return
	}

	metrics.RecordCredit("wheel")
	metrics.RecordWheelSpin(strconv.Itoa(result.Sector))

	c.JSON(http.StatusOK, result)
}
