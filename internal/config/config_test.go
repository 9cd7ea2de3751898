package config

import (
	"os"
	"path/filepath"
	"testing"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/olaskid2005/SignalBot/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func withDataPath(path string) Override {
	return func(c *Config) { c.Market.DataPath = path }
}

func TestDefault_IsValidWithDataPath(t *testing.T) {
	cfg := Default()
	cfg.Market.DataPath = "bars.csv"
	assert.NoError(t, cfg.Validate())

	cfg.Market.DataPath = ""
	assert.True(t, errs.IsConfiguration(cfg.Validate()))
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
indicators:
  rsi_period: 10
fusion:
  buy_score: 0.8
thresholds:
  rsiThresholdBuy: 25
risk:
  balance: 5000
market:
  source: xlsx
  data_path: bars.xlsx
  sheet: BTCUSDT
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Indicators.RSIPeriod)
	assert.Equal(t, 26, cfg.Indicators.MACDLong)
	assert.Equal(t, 0.8, cfg.Fusion.BuyScore)
	assert.Equal(t, 0.3, cfg.Fusion.SellScore)
	assert.Equal(t, 25.0, cfg.Thresholds[signal.RSIThresholdBuy])
	assert.Equal(t, 70.0, cfg.Thresholds[signal.RSIThresholdSell])
	assert.Equal(t, 5000.0, cfg.Risk.Balance)
	assert.Equal(t, 0.01, cfg.Risk.RiskPerTrade)
	assert.Equal(t, SourceExcel, cfg.Market.Source)
	assert.Equal(t, "BTCUSDT", cfg.Market.Sheet)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SIGNALBOT_BALANCE", "2500")
	t.Setenv("SIGNALBOT_LOG_LEVEL", "debug")
	t.Setenv("SIGNALBOT_DATA_SOURCE", "BYBIT")
	t.Setenv("BYBIT_API_KEY", "key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, cfg.Risk.Balance)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, SourceBybit, cfg.Market.Source)
	assert.Equal(t, "key", cfg.Market.APIKey)
}

func TestLoad_InvalidEnvironmentValue(t *testing.T) {
	t.Setenv("SIGNALBOT_RISK_PER_TRADE", "lots")
	_, err := Load("", withDataPath("bars.csv"))
	assert.Error(t, err)
}

func TestLoad_OverridesApplyBeforeValidation(t *testing.T) {
	_, err := Load("")
	assert.True(t, errs.IsConfiguration(err))

	cfg, err := Load("", withDataPath("bars.csv"))
	require.NoError(t, err)
	assert.Equal(t, "bars.csv", cfg.Market.DataPath)
}

func TestLoadEnvFile(t *testing.T) {
	path := writeFile(t, ".env", "SIGNALBOT_SYMBOL=ETHUSDT\n")
	t.Setenv("SIGNALBOT_SYMBOL", "")
	require.NoError(t, os.Unsetenv("SIGNALBOT_SYMBOL"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "ETHUSDT", os.Getenv("SIGNALBOT_SYMBOL"))

	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestValidate_Bounds(t *testing.T) {
	cases := map[string]func(*Config){
		"balance":       func(c *Config) { c.Risk.Balance = 0 },
		"risk":          func(c *Config) { c.Risk.RiskPerTrade = 1.5 },
		"stop":          func(c *Config) { c.Risk.StopLossPct = 0 },
		"rr":            func(c *Config) { c.Risk.RiskReward = -1 },
		"indicator":     func(c *Config) { c.Indicators.ADXPeriod = 0 },
		"fusion":        func(c *Config) { c.Fusion.MACDShort = 30 },
		"multiplier":    func(c *Config) { c.Thresholds[signal.BollingerMultiplier] = 0 },
		"missing key":   func(c *Config) { delete(c.Thresholds, signal.MACDThresholdSell) },
		"scorer":        func(c *Config) { c.Scorer.Kind = "arima" },
		"source":        func(c *Config) { c.Market.Source = "ftp" },
		"bybit limit":   func(c *Config) { c.Market.Source = SourceBybit; c.Market.Limit = 5000 },
		"metrics addr":  func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" },
		"journal path":  func(c *Config) { c.Journal.Enabled = true; c.Journal.Path = "" },
		"notifications": func(c *Config) { c.Notifications.Enabled = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Market.DataPath = "bars.csv"
			mutate(cfg)
			assert.True(t, errs.IsConfiguration(cfg.Validate()))
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Market.DataPath = "bars.csv"
	cfg.Market.APIKey = "secret"
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, cfg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "secret")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Indicators, loaded.Indicators)
	assert.Equal(t, cfg.Risk, loaded.Risk)
}
