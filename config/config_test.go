package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcalc/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, 30*24*time.Hour, cfg.SnapshotTTL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", StoreRedis)
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("RATE_LIMIT_CAPACITY", "not-a-number")

	cfg := Load()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 60, cfg.RateLimitCapacity, "bad values fall back")
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nPROPCALC_A=from-file\nexport PROPCALC_B=\"quoted\"\nbroken-line\n"), 0o600))

	t.Setenv("PROPCALC_A", "from-env")
	t.Setenv("PROPCALC_B", "")
	os.Unsetenv("PROPCALC_B")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("PROPCALC_A"))
	assert.Equal(t, "quoted", os.Getenv("PROPCALC_B"))
}

func TestLoadDefaults_Embedded(t *testing.T) {
	d, err := LoadDefaults("")
	require.NoError(t, err)

	assert.Equal(t, domain.FrequencyMonthly, d.Mortgage.PaymentFrequency)
	assert.Equal(t, 70, d.Decision.ClientAge)
	assert.Equal(t, 90, d.Decision.PlanningAge)
	assert.InDelta(t, 66.6667, d.Decision.InclusionPercent, 1e-9)
	assert.InDelta(t, 1.25, d.Screening.MinDSCR, 1e-9)
	assert.Nil(t, d.Candidate.ClosingCosts)
}

func TestParseDefaults_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseDefaults([]byte("decision:\n  clientAgee: 70\n"))
	assert.Error(t, err)
}

func TestLoadDefaults_MissingFile(t *testing.T) {
	_, err := LoadDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
