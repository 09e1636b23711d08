package postback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/ledger"
)

const testToken = "s3cret"

type MockLedgerRepo struct{ mock.Mock }

func (m *MockLedgerRepo) GetOrCreate(ctx context.Context, userID string) (*ledger.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Balance), args.Error(1)
}

func (m *MockLedgerRepo) ApplyDelta(ctx context.Context, userID string, delta int64, action string) (int64, error) {
	args := m.Called(ctx, userID, delta, action)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepo) ClaimDaily(ctx context.Context, userID string, points int64) (bool, int64, error) {
	args := m.Called(ctx, userID, points)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepo) CreditOnce(ctx context.Context, transactionID, userID string, reward int64, action string) (bool, int64, error) {
	args := m.Called(ctx, transactionID, userID, reward, action)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepo) History(ctx context.Context, userID string, limit, offset int) ([]ledger.HistoryEntry, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.HistoryEntry), args.Error(1)
}

func setupPostbackRouter(repo ledger.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(repo, nil, testToken)
	router.Any("/postback", h.Handle)
	return router
}

func get(router *gin.Engine, params url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/postback?"+params.Encode(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validParams() url.Values {
	return url.Values{
		"user_id":        {"u1"},
		"reward":         {"1000"},
		"transaction_id": {"tx1"},
		"token":          {testToken},
	}
}

func TestPostback_FirstCredit(t *testing.T) {
	repo := new(MockLedgerRepo)
	repo.On("CreditOnce", mock.Anything, "tx1", "u1", int64(1000), "offerwall reward tx1").
		Return(true, int64(1000), nil)

	w := get(setupPostbackRouter(repo), validParams())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	repo.AssertExpectations(t)
}

func TestPostback_DuplicateTransaction(t *testing.T) {
	repo := new(MockLedgerRepo)
	repo.On("CreditOnce", mock.Anything, "tx1", "u1", int64(1000), "offerwall reward tx1").
		Return(false, int64(0), nil)

	w := get(setupPostbackRouter(repo), validParams())

	// Duplicates still report success so the network stops retrying.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok (duplicate)", w.Body.String())
}

func TestPostback_MissingUserID(t *testing.T) {
	repo := new(MockLedgerRepo)
	params := validParams()
	params.Del("user_id")

	w := get(setupPostbackRouter(repo), params)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing user_id", w.Body.String())
	repo.AssertNotCalled(t, "CreditOnce")
}

func TestPostback_MissingTransactionID(t *testing.T) {
	repo := new(MockLedgerRepo)
	params := validParams()
	params.Del("transaction_id")

	w := get(setupPostbackRouter(repo), params)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing txid", w.Body.String())
}

func TestPostback_InvalidReward(t *testing.T) {
	repo := new(MockLedgerRepo)
	router := setupPostbackRouter(repo)

	for _, bad := range []string{"0", "-5", "abc", "", "0.4"} {
		params := validParams()
		params.Set("reward", bad)

		w := get(router, params)

		assert.Equal(t, http.StatusBadRequest, w.Code, "reward=%q", bad)
		assert.Equal(t, "invalid reward", w.Body.String())
	}

	repo.AssertNotCalled(t, "CreditOnce")
}

func TestPostback_RewardRoundsToNearestInteger(t *testing.T) {
	repo := new(MockLedgerRepo)
	repo.On("CreditOnce", mock.Anything, "tx1", "u1", int64(11), "offerwall reward tx1").
		Return(true, int64(11), nil)

	params := validParams()
	params.Set("reward", "10.6")

	w := get(setupPostbackRouter(repo), params)

	require.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestPostback_InvalidToken(t *testing.T) {
	repo := new(MockLedgerRepo)
	params := validParams()
	params.Set("token", "wrong")

	w := get(setupPostbackRouter(repo), params)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "invalid token", w.Body.String())
	repo.AssertNotCalled(t, "CreditOnce")
}

func TestPostback_TokenCheckedBeforePersistence(t *testing.T) {
	// Structural errors win over the token check, but a bad token must never
	// reach the store.
	repo := new(MockLedgerRepo)
	params := validParams()
	params.Set("token", "wrong")
	params.Del("user_id")

	w := get(setupPostbackRouter(repo), params)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing user_id", w.Body.String())
	repo.AssertNotCalled(t, "CreditOnce")
}

func TestPostback_StoreError(t *testing.T) {
	repo := new(MockLedgerRepo)
	repo.On("CreditOnce", mock.Anything, "tx1", "u1", int64(1000), "offerwall reward tx1").
		Return(false, int64(0), ledger.ErrStoreUnavailable)

	w := get(setupPostbackRouter(repo), validParams())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", w.Body.String())
}

func TestPostback_FieldAliases(t *testing.T) {
	repo := new(MockLedgerRepo)
	repo.On("CreditOnce", mock.Anything, "click9", "sub42", int64(250), "offerwall reward click9").
		Return(true, int64(250), nil)

	params := url.Values{
		"subid":    {"sub42"},
		"payout":   {"250"},
		"click_id": {"click9"},
		"token":    {testToken},
	}

	w := get(setupPostbackRouter(repo), params)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	repo.AssertExpectations(t)
}

func TestPostback_PostFormBody(t *testing.T) {
	repo := new(MockLedgerRepo)
	repo.On("CreditOnce", mock.Anything, "tx2", "u2", int64(75), "offerwall reward tx2").
		Return(true, int64(75), nil)

	router := setupPostbackRouter(repo)

	form := url.Values{
		"user_id":        {"u2"},
		"reward":         {"75"},
		"transaction_id": {"tx2"},
		"token":          {testToken},
	}
	req := httptest.NewRequest("POST", "/postback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestPostback_UnsupportedMethodShortCircuits(t *testing.T) {
	repo := new(MockLedgerRepo)
	router := setupPostbackRouter(repo)

	for _, method := range []string{"OPTIONS", "DELETE", "PATCH", "HEAD"} {
		req := httptest.NewRequest(method, "/postback", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code, method)
		assert.Empty(t, w.Body.String())
	}

	repo.AssertNotCalled(t, "CreditOnce")
}
