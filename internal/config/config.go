// Package config loads the bot configuration from YAML, .env files and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/olaskid2005/SignalBot/internal/indicators"
	"github.com/olaskid2005/SignalBot/internal/logger"
	"github.com/olaskid2005/SignalBot/internal/scoring"
	"github.com/olaskid2005/SignalBot/internal/signal"
)

// Data sources understood by Market.Source
const (
	SourceCSV   = "csv"
	SourceExcel = "xlsx"
	SourceBybit = "bybit"
)

// Risk holds the sizing parameters
type Risk struct {
	Balance      float64 `yaml:"balance" json:"balance"`
	RiskPerTrade float64 `yaml:"risk_per_trade" json:"risk_per_trade"`
	StopLossPct  float64 `yaml:"stop_loss_pct" json:"stop_loss_pct"`
	RiskReward   float64 `yaml:"risk_reward" json:"risk_reward"`
}

// Market describes where bars come from
type Market struct {
	Source    string `yaml:"source" json:"source"`
	DataPath  string `yaml:"data_path" json:"data_path"`
	Sheet     string `yaml:"sheet" json:"sheet"`
	Symbol    string `yaml:"symbol" json:"symbol"`
	Interval  string `yaml:"interval" json:"interval"`
	Category  string `yaml:"category" json:"category"`
	Limit     int    `yaml:"limit" json:"limit"`
	Testnet   bool   `yaml:"testnet" json:"testnet"`
	APIKey    string `yaml:"-" json:"-"`
	APISecret string `yaml:"-" json:"-"`
}

// Metrics controls the prometheus endpoint
type Metrics struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

// Journal controls the SQLite decision journal
type Journal struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// Report sets optional output files; empty paths are skipped
type Report struct {
	ExcelPath string `yaml:"excel_path" json:"excel_path"`
	ChartPath string `yaml:"chart_path" json:"chart_path"`
	JSONPath  string `yaml:"json_path" json:"json_path"`
}

// Notifications configures Telegram alerts for actionable proposals
type Notifications struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	ChatID  string `yaml:"chat_id" json:"chat_id"`
	Token   string `yaml:"-" json:"-"`
}

// Config is the complete bot configuration
type Config struct {
	Indicators indicators.IndicatorConfig `yaml:"indicators" json:"indicators"`
	Fusion     signal.FusionConfig        `yaml:"fusion" json:"fusion"`
	Thresholds signal.Thresholds          `yaml:"thresholds" json:"thresholds"`
	Risk       Risk                       `yaml:"risk" json:"risk"`
	Scorer     scoring.Config             `yaml:"scorer" json:"scorer"`
	Market     Market                     `yaml:"market" json:"market"`
	Logging    logger.Config              `yaml:"logging" json:"logging"`
	Metrics    Metrics                    `yaml:"metrics" json:"metrics"`
	Journal    Journal                    `yaml:"journal" json:"journal"`
	Report     Report                     `yaml:"report" json:"report"`

	Notifications Notifications `yaml:"notifications" json:"notifications"`
}

// Default returns a complete configuration with the standard settings
func Default() *Config {
	return &Config{
		Indicators: indicators.DefaultIndicatorConfig(),
		Fusion:     signal.DefaultFusionConfig(),
		Thresholds: signal.DefaultThresholds(),
		Risk: Risk{
			Balance:      10000,
			RiskPerTrade: 0.01,
			StopLossPct:  0.02,
			RiskReward:   2.0,
		},
		Scorer: scoring.DefaultConfig(),
		Market: Market{
			Source:   SourceCSV,
			Symbol:   "BTCUSDT",
			Interval: "60",
			Category: "linear",
			Limit:    200,
			Testnet:  true,
		},
		Logging: logger.DefaultConfig(),
		Metrics: Metrics{Addr: ":9090"},
		Journal: Journal{Path: "signalbot.db"},
	}
}

// LoadEnvFile loads a .env file into the process environment. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Override adjusts a loaded configuration before validation, typically from
// command line flags
type Override func(*Config)

// Load builds a configuration from defaults, the optional YAML file at path,
// SIGNALBOT_* environment variables and overrides, then validates it
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Logging.Level = getEnv("SIGNALBOT_LOG_LEVEL", c.Logging.Level)
	c.Logging.Encoding = getEnv("SIGNALBOT_LOG_ENCODING", c.Logging.Encoding)
	c.Logging.Dir = getEnv("SIGNALBOT_LOG_DIR", c.Logging.Dir)

	c.Market.Source = strings.ToLower(getEnv("SIGNALBOT_DATA_SOURCE", c.Market.Source))
	c.Market.DataPath = getEnv("SIGNALBOT_DATA_PATH", getEnv("DATA_PATH", c.Market.DataPath))
	c.Market.Symbol = getEnv("SIGNALBOT_SYMBOL", c.Market.Symbol)
	c.Market.Interval = getEnv("SIGNALBOT_INTERVAL", c.Market.Interval)
	c.Market.APIKey = getEnv("BYBIT_API_KEY", c.Market.APIKey)
	c.Market.APISecret = getEnv("BYBIT_API_SECRET", c.Market.APISecret)

	c.Metrics.Addr = getEnv("SIGNALBOT_METRICS_ADDR", c.Metrics.Addr)
	c.Journal.Path = getEnv("SIGNALBOT_JOURNAL_PATH", c.Journal.Path)
	c.Notifications.Token = getEnv("TELEGRAM_BOT_TOKEN", c.Notifications.Token)
	c.Notifications.ChatID = getEnv("TELEGRAM_CHAT_ID", c.Notifications.ChatID)

	var err error
	if c.Market.Testnet, err = getEnvBool("SIGNALBOT_TESTNET", c.Market.Testnet); err != nil {
		return err
	}
	if c.Metrics.Enabled, err = getEnvBool("SIGNALBOT_METRICS_ENABLED", c.Metrics.Enabled); err != nil {
		return err
	}
	if c.Notifications.Enabled, err = getEnvBool("SIGNALBOT_NOTIFICATIONS_ENABLED", c.Notifications.Enabled); err != nil {
		return err
	}
	if c.Journal.Enabled, err = getEnvBool("SIGNALBOT_JOURNAL_ENABLED", c.Journal.Enabled); err != nil {
		return err
	}
	if c.Risk.Balance, err = getEnvFloat("SIGNALBOT_BALANCE", c.Risk.Balance); err != nil {
		return err
	}
	if c.Risk.RiskPerTrade, err = getEnvFloat("SIGNALBOT_RISK_PER_TRADE", c.Risk.RiskPerTrade); err != nil {
		return err
	}
	return nil
}

// Validate checks every bound and returns the first problem found
func (c *Config) Validate() error {
	if c.Risk.Balance <= 0 {
		return configError("risk.balance must be greater than 0", "balance", c.Risk.Balance)
	}
	if c.Risk.RiskPerTrade <= 0 || c.Risk.RiskPerTrade > 1 {
		return configError("risk.risk_per_trade must be within (0, 1]", "risk_per_trade", c.Risk.RiskPerTrade)
	}
	if c.Risk.StopLossPct <= 0 || c.Risk.StopLossPct >= 1 {
		return configError("risk.stop_loss_pct must be within (0, 1)", "stop_loss_pct", c.Risk.StopLossPct)
	}
	if c.Risk.RiskReward <= 0 {
		return configError("risk.risk_reward must be greater than 0", "risk_reward", c.Risk.RiskReward)
	}
	if _, err := indicators.NewSuite(c.Indicators); err != nil {
		return err
	}
	if _, err := signal.NewFusion(c.Fusion); err != nil {
		return err
	}
	for _, key := range signal.ThresholdKeys {
		if _, ok := c.Thresholds[key]; !ok {
			return configError("thresholds is missing a key", "key", key)
		}
	}
	if c.Thresholds[signal.BollingerMultiplier] <= 0 {
		return configError("thresholds.bollingerMultiplier must be greater than 0", "value", c.Thresholds[signal.BollingerMultiplier])
	}
	if _, err := scoring.New(c.Scorer); err != nil {
		return err
	}
	switch c.Market.Source {
	case SourceCSV, SourceExcel:
		if c.Market.DataPath == "" {
			return configError("market.data_path is required for file sources", "source", c.Market.Source)
		}
	case SourceBybit:
		if c.Market.Symbol == "" || c.Market.Interval == "" {
			return configError("market.symbol and market.interval are required for bybit", "source", c.Market.Source)
		}
		if c.Market.Limit <= 0 || c.Market.Limit > 1000 {
			return configError("market.limit must be within [1, 1000]", "limit", c.Market.Limit)
		}
	default:
		return configError("unknown market.source", "source", c.Market.Source)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return configError("metrics.addr is required when metrics are enabled", "enabled", true)
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return configError("journal.path is required when the journal is enabled", "enabled", true)
	}
	if c.Notifications.Enabled && (c.Notifications.Token == "" || c.Notifications.ChatID == "") {
		return configError("TELEGRAM_BOT_TOKEN and notifications.chat_id are required when notifications are enabled", "enabled", true)
	}
	return nil
}

func configError(msg, key string, value interface{}) error {
	return errs.NewConfigurationError("Config", "validate", msg).WithContext(key, value)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return f, nil
}
