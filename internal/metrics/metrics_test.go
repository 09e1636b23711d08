package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("GET", "/points", "200", 0.05)
	RecordHTTPRequest("GET", "/points", "200", 0.07)
	RecordHTTPRequest("GET", "/points", "500", 0.01)

	ok := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/points", "200"))
	failed := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/points", "500"))

	assert.Equal(t, float64(2), ok)
	assert.Equal(t, float64(1), failed)
}

func TestRecordCredit(t *testing.T) {
	CreditsTotal.Reset()

	RecordCredit("ad")
	RecordCredit("ad")
	RecordCredit("postback")

	assert.Equal(t, float64(2), testutil.ToFloat64(CreditsTotal.WithLabelValues("ad")))
	assert.Equal(t, float64(1), testutil.ToFloat64(CreditsTotal.WithLabelValues("postback")))
}

func TestRecordPostbackOutcomes(t *testing.T) {
	PostbacksTotal.Reset()

	RecordPostback("credited")
	RecordPostback("duplicate")
	RecordPostback("duplicate")
	RecordPostback("invalid_token")

	assert.Equal(t, float64(1), testutil.ToFloat64(PostbacksTotal.WithLabelValues("credited")))
	assert.Equal(t, float64(2), testutil.ToFloat64(PostbacksTotal.WithLabelValues("duplicate")))
	assert.Equal(t, float64(1), testutil.ToFloat64(PostbacksTotal.WithLabelValues("invalid_token")))
}

func TestRecordWheelSpinAndDailyClaim(t *testing.T) {
	WheelSpinsTotal.Reset()
	DailyClaimsTotal.Reset()

	RecordWheelSpin("3")
	RecordDailyClaim("claimed")
	RecordDailyClaim("already_claimed")

	assert.Equal(t, float64(1), testutil.ToFloat64(WheelSpinsTotal.WithLabelValues("3")))
	assert.Equal(t, float64(1), testutil.ToFloat64(DailyClaimsTotal.WithLabelValues("claimed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(DailyClaimsTotal.WithLabelValues("already_claimed")))
}

func TestRecordRedemption(t *testing.T) {
	before := testutil.ToFloat64(RedemptionsTotal)

	RecordRedemption()

	assert.Equal(t, before+1, testutil.ToFloat64(RedemptionsTotal))
}
