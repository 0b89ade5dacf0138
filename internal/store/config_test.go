package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.NoError(t, c.Validate())
	assert.Equal(t, []int{5, 10, 20, 50, 100, 200}, c.Indicators.SMAWindows)
	assert.Equal(t, 0.02, c.Metrics.RiskFreeRate)
	assert.Equal(t, "auto", c.Metrics.Backend)
	assert.Equal(t, 3, c.Sentiment.MaxLag)
	assert.Len(t, c.Tickers, 7)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/reports")
	path := writeConfig(t, `
tickers: [aapl, " msft "]
indicators:
  sma_windows: [10, 30]
  rsi_period: 9
metrics:
  backend: manual
  risk_free_rate: 0
sentiment:
  max_lag: 5
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, c.Tickers)
	assert.Equal(t, []int{10, 30}, c.Indicators.SMAWindows)
	assert.Equal(t, 0.0, c.Metrics.RiskFreeRate)
	assert.Equal(t, "manual", c.Metrics.Backend)
	assert.Equal(t, 5, c.Sentiment.MaxLag)
	assert.Equal(t, "/tmp/reports", c.Output.Dir)
	assert.Equal(t, "data/yfinance_data", c.Data.PriceDir)

	p := c.IndicatorParams()
	assert.Equal(t, 9, p.RSI)
	assert.Equal(t, []int{10, 30}, p.Baseline)
	assert.Equal(t, 20, p.BBPeriod)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"backend":   "metrics:\n  backend: gpu\n",
		"group":     "indicators:\n  groups: [trend, sparkle]\n",
		"lag":       "sentiment:\n  max_lag: -1\n",
		"window":    "indicators:\n  sma_windows: [5, 0]\n",
		"no_ticker": "tickers: []\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.ErrorContains(t, err, "config validation failed")
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
