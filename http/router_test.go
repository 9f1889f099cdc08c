package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"propcalc/config"
	"propcalc/domain"
	"propcalc/observability"
	"propcalc/repository"
	"propcalc/service"
)

func newTestRouter(t *testing.T, limiter *RateLimiter) http.Handler {
	t.Helper()
	defaults, err := config.LoadDefaults("")
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	logger := zap.NewNop()
	return NewRouter(Services{
		Calculator: service.NewCalculatorService(metrics, logger),
		Listings:   service.NewListingExtractor(metrics, logger),
		Snapshots:  service.NewSnapshotService(repository.NewSnapshotRepositoryMemory(), metrics, logger),
		Defaults:   defaults,
		Limiter:    limiter,
	}, metrics, logger)
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOperationalEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, path := range []string{"/healthz", "/ping", "/metrics"} {
		rec := do(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestHealthzReportsDegradedStore(t *testing.T) {
	defaults, err := config.LoadDefaults("")
	require.NoError(t, err)
	router := NewRouter(Services{
		Defaults: defaults,
		Ready:    func(context.Context) error { return errors.New("dial tcp: refused") },
	}, observability.NewMetrics(), zap.NewNop())

	rec := do(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDebtServiceHandler_OK(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/v1/mortgage/debt-service?convention=simple",
		`{"principal": 200000, "annualRatePercent": 4, "amortizationYears": 25, "paymentFrequency": "monthly", "termYears": 25}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.DebtServiceResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 1055.67, res.PeriodicPayment, 0.01)
	assert.Equal(t, 12, res.PeriodsPerYear)
}

func TestDebtServiceHandler_BadRequest(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/v1/mortgage/debt-service", `{"principal": "lots"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "invalid request body"}`, rec.Body.String())
}

func TestDebtServiceHandler_ValidationError(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/v1/mortgage/schedule", `{"principal": 1000, "amortizationYears": 900}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "amortizationYears")
}

func TestDebtServiceHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodGet, "/v1/mortgage/debt-service", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCompareHandler(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/v1/properties/compare", `{
		"current": {"value": 500000, "monthlyRent": 3000, "loanBalance": 250000, "sellingCostsPercent": 5},
		"candidate": {"purchasePrice": 400000, "monthlyRent": 2800, "downPaymentPercent": 20, "interestRatePercent": 5, "amortizationYears": 25}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.ComparisonMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 225000, res.NetSaleProceeds, 1e-6)
	assert.InDelta(t, 320000, res.CandidateLoanAmount, 1e-6)
}

func TestScreenHandler_DefaultThresholds(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/v1/properties/screen", `{"candidate": {"purchasePrice": 400000, "monthlyRent": 100}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.ScreeningResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Passes)
	require.Len(t, res.Checks, 4)
	assert.Equal(t, 5.0, res.Checks[0].Required)
}

func TestDecisionHandler(t *testing.T) {
	router := newTestRouter(t, nil)
	defaults, err := config.LoadDefaults("")
	require.NoError(t, err)
	body, err := json.Marshal(defaults.Decision)
	require.NoError(t, err)

	rec := do(router, http.MethodPost, "/v1/decision", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.DecisionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Series, defaults.Decision.PlanningAge-defaults.Decision.ClientAge+1)
	assert.Contains(t, []domain.Decision{domain.DecisionYes, domain.DecisionNo}, res.Decision)
}

func TestDecisionHandler_ExtremeAgesAreRejected(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/v1/decision", `{"clientAge": -1, "planningAge": 9223372036854775807}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "planningAge")
}

func TestDecisionHandler_OverflowingGrowthEncodes(t *testing.T) {
	router := newTestRouter(t, nil)
	defaults, err := config.LoadDefaults("")
	require.NoError(t, err)
	in := defaults.Decision
	in.CurrentGrowthPercent = 1e6
	in.PlanningAge = in.ClientAge + 120
	body, err := json.Marshal(in)
	require.NoError(t, err)

	rec := do(router, http.MethodPost, "/v1/decision", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.DecisionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Series, 121)
}

func TestWriteJSON_UnencodableValueIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"value": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "response encoding failed"}`, rec.Body.String())
}

func TestListingHandler(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/v1/listings/extract", `<meta property="og:price:amount" content="525000">`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.ListingExtraction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 525000.0, res.Fields[domain.FieldPurchasePrice].Value)
}

func TestSnapshotRoundTrip(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/v1/snapshots", `{"current": {"value": 750000}}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	var saved map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved["id"])

	rec = do(router, http.MethodGet, "/v1/snapshots/"+saved["id"], "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap domain.InputSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 750000.0, snap.Current.Value)

	rec = do(router, http.MethodGet, "/v1/snapshots/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDefaultsHandler(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodGet, "/v1/defaults", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d config.Defaults
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, 90, d.Decision.PlanningAge)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()
	router := newTestRouter(t, limiter)

	for i := 0; i < 2; i++ {
		rec := do(router, http.MethodGet, "/v1/defaults", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(router, http.MethodGet, "/v1/defaults", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// Operational endpoints are not limited.
	rec = do(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	ok, _ := limiter.Allow("10.0.0.1")
	require.True(t, ok)

	ok, wait := limiter.Allow("10.0.0.1")
	require.False(t, ok)
	assert.Equal(t, time.Minute, wait)

	ok, _ = limiter.Allow("10.0.0.2")
	assert.True(t, ok, "buckets are per client")

	now = now.Add(time.Minute)
	ok, _ = limiter.Allow("10.0.0.1")
	assert.True(t, ok)
}

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)
	defer limiter.Stop()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")
	now = now.Add(2 * time.Hour)
	limiter.cleanup()

	assert.Empty(t, limiter.clients)
	limiter.Stop()
}
