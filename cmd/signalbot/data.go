package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/olaskid2005/SignalBot/internal/config"
	"github.com/olaskid2005/SignalBot/internal/exchange/bybit"
	"github.com/olaskid2005/SignalBot/internal/logger"
	"github.com/olaskid2005/SignalBot/pkg/data"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// newProvider returns the data provider and the source it should read
func newProvider(cfg *config.Config, log logger.Logger) (data.DataProvider, string, error) {
	switch cfg.Market.Source {
	case config.SourceCSV:
		return data.NewCSVProvider(log), cfg.Market.DataPath, nil
	case config.SourceExcel:
		return data.NewExcelProvider(cfg.Market.Sheet, log), cfg.Market.DataPath, nil
	case config.SourceBybit:
		client := newBybitClient(cfg)
		log.Info("using bybit market data", logger.String("environment", client.GetEnvironment()))
		provider := bybit.NewKlineProvider(client, bybit.KlineParams{
			Category: cfg.Market.Category,
			Interval: bybit.KlineInterval(data.ConvertIntervalToMinutes(cfg.Market.Interval)),
			Limit:    cfg.Market.Limit,
		})
		return provider, cfg.Market.Symbol, nil
	default:
		return nil, "", fmt.Errorf("unknown data source %q", cfg.Market.Source)
	}
}

func newBybitClient(cfg *config.Config) *bybit.Client {
	return bybit.NewClient(bybit.Config{
		APIKey:    cfg.Market.APIKey,
		APISecret: cfg.Market.APISecret,
		Testnet:   cfg.Market.Testnet,
	})
}

// fetchTicker reads the live ticker of the configured symbol from Bybit
func fetchTicker(ctx context.Context, cfg *config.Config) (*types.Ticker, error) {
	return newBybitClient(cfg).GetTicker(ctx, cfg.Market.Category, cfg.Market.Symbol)
}

// window narrows the loaded series. Filters apply in field order and empty
// fields are skipped.
type window struct {
	period string
	from   string
	to     string
	last   int
}

func (w window) apply(bars []types.OHLCV) ([]types.OHLCV, error) {
	if w.period != "" {
		d, ok := data.ParseTrailingPeriod(w.period)
		if !ok {
			return nil, fmt.Errorf("invalid period %q", w.period)
		}
		bars = data.FilterByPeriod(bars, d)
	}
	if (w.from != "" || w.to != "") && len(bars) > 0 {
		var start time.Time
		end := bars[len(bars)-1].Timestamp
		var err error
		if w.from != "" {
			if start, err = data.ParseDate(w.from); err != nil {
				return nil, fmt.Errorf("invalid from date %q: %w", w.from, err)
			}
		}
		if w.to != "" {
			if end, err = data.ParseDate(w.to); err != nil {
				return nil, fmt.Errorf("invalid to date %q: %w", w.to, err)
			}
		}
		bars = data.FilterByDateRange(bars, start, end)
	}
	return data.LastN(bars, w.last), nil
}

// loadBars loads, checks and windows the bar series
func loadBars(ctx context.Context, cfg *config.Config, w window, log logger.Logger) ([]types.OHLCV, error) {
	provider, source, err := newProvider(cfg, log)
	if err != nil {
		return nil, err
	}

	bars, err := provider.LoadData(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load bars from %s: %w", provider.GetName(), err)
	}
	if err := data.ValidateData(bars); err != nil {
		return nil, err
	}

	if bars, err = w.apply(bars); err != nil {
		return nil, err
	}

	log.Info("loaded bars",
		logger.String("provider", provider.GetName()),
		logger.String("source", source),
		logger.Int("count", len(bars)))
	return bars, nil
}

// loadStats reads the historical success-rate feed used for tuning
func loadStats(path string) (map[string]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats %s: %w", path, err)
	}
	var stats map[string]float64
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats %s: %w", path, err)
	}
	return stats, nil
}
