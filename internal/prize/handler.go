package prize

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/api"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/auth"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/metrics"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListPrizes godoc
// @Summary      List redeemable prizes
// @Tags         prizes
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} Prize
// @Failure      500 {object} api.ErrorResponse
// @Router       /prizes [get]
func (h *Handler) ListPrizes(c *gin.Context) {
	prizes, err := h.svc.ListPrizes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load prizes"})
		return
	}

	if prizes == nil {
		prizes = []Prize{}
	}

	c.JSON(http.StatusOK, prizes)
}

// CreatePrize godoc
// @Summary      Create a prize (admin)
// @Tags         prizes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body CreatePrizeRequest true "Prize"
// @Success      201 {object} Prize
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/prizes [post]
func (h *Handler) CreatePrize(c *gin.Context) {
	var req CreatePrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	p, err := h.svc.CreatePrize(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create prize"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Redeem godoc
// @Summary      Redeem a prize
// @Description  Debits the prize cost from the authoritative balance. Rejected when the cost exceeds the current points.
// @Tags         prizes
// @Security     BearerAuth
// @Produce      json
// @Param        prizeID path int true "Prize ID"
// @Success      200 {object} gin.H
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /prizes/{prizeID}/redeem [post]
func (h *Handler) Redeem(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	prizeID, err := strconv.Atoi(c.Param("prizeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prize id"})
		return
	}

	red, balance, err := h.svc.Redeem(c.Request.Context(), userID, prizeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPrizeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "prize not found"})
		case errors.Is(err, ErrPrizeInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": "prize is not available"})
		case errors.Is(err, ErrInsufficientPoints):
			c.JSON(http.StatusBadRequest, gin.H{"error": "not enough points"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to redeem prize"})
		}
		return
	}

	metrics.RecordRedemption()

	c.JSON(http.StatusOK, gin.H{
		"redemption": red,
		"balance":    balance,
	})
}

// MyRedemptions godoc
// @Summary      List own redemptions
// @Tags         prizes
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} Redemption
// @Failure      500 {object} api.ErrorResponse
// @Router       /redemptions [get]
func (h *Handler) MyRedemptions(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	redemptions, err := h.svc.MyRedemptions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load redemptions"})
		return
	}

	if redemptions == nil {
		redemptions = []Redemption{}
	}

	c.JSON(http.StatusOK, redemptions)
}
