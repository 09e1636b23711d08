// Package postback implements the server-to-server credit endpoint called by
// the offer network. It runs outside any user session: the caller proves
// itself with a shared secret token, and every credit is keyed by the
// network's transaction id so retries are always safe.
package postback

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/cache"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/ledger"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/logger"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/metrics"
)

// storeTimeout bounds the validation-through-credit pipeline so a stalled
// store cannot hang the offer network's caller.
const storeTimeout = 5 * time.Second

// The network's payload shape is not fully under our control, so each logical
// field accepts a primary name plus fallbacks.
var (
	userIDAliases = []string{"user_id", "userid", "subid"}
	rewardAliases = []string{"reward", "amount", "payout"}
	txIDAliases   = []string{"transaction_id", "txid", "click_id"}
)

type Handler struct {
	repo     ledger.Repository
	balances *cache.BalanceCache
	token    string
}

func NewHandler(repo ledger.Repository, balances *cache.BalanceCache, token string) *Handler {
	return &Handler{
		repo:     repo,
		balances: balances,
		token:    token,
	}
}

// Handle godoc
// @Summary      Offer-network postback
// @Description  Credits a user once per transaction id. Plain-text protocol; authenticated by the shared token parameter.
// @Tags         postback
// @Produce      plain
// @Param        user_id        query string true  "User id (aliases: userid, subid)"
// @Param        reward         query number true  "Reward amount (aliases: amount, payout)"
// @Param        transaction_id query string true  "Transaction id (aliases: txid, click_id)"
// @Param        token          query string true  "Shared secret"
// @Success      200 {string} string "ok"
// @Failure      400 {string} string "missing user_id"
// @Failure      403 {string} string "invalid token"
// @Failure      500 {string} string "error"
// @Router       /postback [get]
func (h *Handler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut:
	default:
		// Pre-flight style pings short-circuit before any business logic.
		c.Status(http.StatusNoContent)
		return
	}

	userID := h.field(c, userIDAliases)
	txID := h.field(c, txIDAliases)
	rawReward := h.field(c, rewardAliases)
	token := h.field(c, []string{"token"})

	if userID == "" {
		c.String(http.StatusBadRequest, "missing user_id")
		return
	}

	if txID == "" {
		c.String(http.StatusBadRequest, "missing txid")
		return
	}

	reward, ok := coerceReward(rawReward)
	if !ok {
		c.String(http.StatusBadRequest, "invalid reward")
		return
	}

	// The token gate sits after the structural checks so malformed pings are
	// rejected cheaply, but always before any persistence.
	if token != h.token {
		metrics.RecordPostback("invalid_token")
		c.String(http.StatusForbidden, "invalid token")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	firstClaim, newBalance, err := h.repo.CreditOnce(ctx, txID, userID, reward, "offerwall reward "+txID)
	if err != nil {
		logger.Errorf("postback credit failed for tx %s: %v", txID, err)
		metrics.RecordPostback("error")
		c.String(http.StatusInternalServerError, "error")
		return
	}

	if !firstClaim {
		metrics.RecordPostback("duplicate")
		c.String(http.StatusOK, "ok (duplicate)")
		return
	}

	h.balances.Invalidate(ctx, userID)
	metrics.RecordPostback("credited")
	metrics.RecordCredit("postback")
	logger.Infof("postback credited %d points to %s (tx %s), balance now %d", reward, userID, txID, newBalance)

	c.String(http.StatusOK, "ok")
}

// field resolves a logical field from whichever transport carried it: the
// query string for reads, the form body (falling back to the query) for
// writes.
func (h *Handler) field(c *gin.Context, names []string) string {
	for _, name := range names {
		var v string
		if c.Request.Method == http.MethodGet {
			v = c.Query(name)
		} else {
			v = c.PostForm(name)
			if v == "" {
				v = c.Query(name)
			}
		}
		if v != "" {
			return v
		}
	}
	return ""
}

// coerceReward parses the network-supplied amount, rounds it to the nearest
// integer and requires the result to be positive.
func coerceReward(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}

	reward := int64(math.Round(f))
	if reward <= 0 {
		return 0, false
	}

	return reward, true
}
