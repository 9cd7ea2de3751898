package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	ossignal "os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/olaskid2005/SignalBot/cmd/common"
	"github.com/olaskid2005/SignalBot/internal/config"
	"github.com/olaskid2005/SignalBot/internal/journal"
	"github.com/olaskid2005/SignalBot/internal/logger"
	"github.com/olaskid2005/SignalBot/internal/monitoring"
	"github.com/olaskid2005/SignalBot/internal/notifications"
	"github.com/olaskid2005/SignalBot/internal/orchestrator"
	"github.com/olaskid2005/SignalBot/pkg/reporting"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

type flags struct {
	configPath  string
	envPath     string
	dataPath    string
	source      string
	symbol      string
	interval    string
	period      string
	from        string
	to          string
	last        int
	statsPath   string
	exportPath  string
	chartPath   string
	jsonPath    string
	writeConfig string
	version     bool
}

func parseFlags(args []string) (*flags, error) {
	fs := flag.NewFlagSet("signalbot", flag.ContinueOnError)
	f := &flags{}
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.envPath, "env", ".env", "Environment file path")
	fs.StringVar(&f.dataPath, "data", "", "CSV or XLSX bar file (overrides market.data_path)")
	fs.StringVar(&f.source, "source", "", "Market data source: csv, xlsx or bybit")
	fs.StringVar(&f.symbol, "symbol", "", "Trading symbol (overrides market.symbol)")
	fs.StringVar(&f.interval, "interval", "", "Kline interval, e.g. 1h or 60 (overrides market.interval)")
	fs.StringVar(&f.period, "period", "", "Trailing window to evaluate, e.g. 30d or 72h")
	fs.StringVar(&f.from, "from", "", "Keep bars at or after this date (2006-01-02 or RFC 3339)")
	fs.StringVar(&f.to, "to", "", "Keep bars at or before this date (2006-01-02 or RFC 3339)")
	fs.IntVar(&f.last, "last", 0, "Keep only the trailing N bars")
	fs.StringVar(&f.statsPath, "stats", "", "JSON file of historical success rates for threshold tuning")
	fs.StringVar(&f.exportPath, "export", "", "Write bars and indicators to this XLSX file")
	fs.StringVar(&f.chartPath, "chart", "", "Write an HTML candlestick chart to this file")
	fs.StringVar(&f.jsonPath, "json", "", "Write the JSON report to this file")
	fs.StringVar(&f.writeConfig, "write-config", "", "Write the effective configuration to this YAML file and exit")
	fs.BoolVar(&f.version, "version", false, "Show version information")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// overrides maps command line flags onto the loaded configuration
func (f *flags) overrides() config.Override {
	return func(cfg *config.Config) {
		if f.dataPath != "" {
			cfg.Market.DataPath = f.dataPath
			if f.source == "" && strings.HasSuffix(strings.ToLower(f.dataPath), ".xlsx") {
				cfg.Market.Source = config.SourceExcel
			}
		}
		if f.source != "" {
			cfg.Market.Source = strings.ToLower(f.source)
		}
		if f.symbol != "" {
			cfg.Market.Symbol = strings.ToUpper(f.symbol)
		}
		if f.interval != "" {
			cfg.Market.Interval = f.interval
		}
		if f.exportPath != "" {
			cfg.Report.ExcelPath = f.exportPath
		}
		if f.chartPath != "" {
			cfg.Report.ChartPath = f.chartPath
		}
		if f.jsonPath != "" {
			cfg.Report.JSONPath = f.jsonPath
		}
	}
}

func (f *flags) window() window {
	return window{period: f.period, from: f.from, to: f.to, last: f.last}
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if f.version {
		common.PrintVersion("signalbot")
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(f *flags) error {
	if err := config.LoadEnvFile(f.envPath); err != nil {
		return err
	}
	cfg, err := config.Load(f.configPath, f.overrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Logging, cfg.Market.Symbol, cfg.Market.Interval)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if f.writeConfig != "" {
		if err := config.Save(f.writeConfig, cfg); err != nil {
			return err
		}
		log.Info("wrote configuration", logger.String("path", f.writeConfig))
		return nil
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := monitoring.NewHealthChecker()
	opts := []orchestrator.Option{
		orchestrator.WithLogger(log),
		orchestrator.WithHealthChecker(health),
	}
	if cfg.Journal.Enabled {
		j, err := journal.Open(cfg.Journal.Path, log)
		if err != nil {
			return err
		}
		defer j.Close()
		opts = append(opts, orchestrator.WithRecorder(j))
	}

	if cfg.Notifications.Enabled {
		opts = append(opts, orchestrator.WithNotifier(
			notifications.NewTelegramNotifier(cfg.Notifications.Token, cfg.Notifications.ChatID)))
	}

	advisor, err := orchestrator.NewAdvisor(cfg, opts...)
	if err != nil {
		return err
	}

	var server *http.Server
	if cfg.Metrics.Enabled {
		server = startMetricsServer(cfg.Metrics.Addr, health, log)
	}

	bars, err := loadBars(ctx, cfg, f.window(), log)
	if err != nil {
		return err
	}

	console := reporting.NewConsole(os.Stdout)

	report := &reporting.Report{
		Symbol:      cfg.Market.Symbol,
		Interval:    cfg.Market.Interval,
		GeneratedAt: time.Now().UTC(),
	}
	if f.statsPath != "" {
		stats, err := loadStats(f.statsPath)
		if err != nil {
			return err
		}
		report.Adjustments = advisor.Tune(stats)
		console.PrintAdjustments(report.Adjustments)
	}

	result, err := advisor.Run(ctx, bars)
	if err != nil {
		return err
	}

	console.PrintSnapshot(result.Snapshot)
	console.PrintEvaluation(result.Evaluation)
	console.PrintProposal(result.Proposal)

	if cfg.Market.Source == config.SourceBybit {
		ticker, err := fetchTicker(ctx, cfg)
		if err != nil {
			log.Warn("failed to fetch live ticker", logger.Err(err))
		} else {
			console.PrintTicker(ticker)
			report.Ticker = ticker
		}
	}

	report.BarTime = result.BarTime
	report.Evaluation = result.Evaluation
	report.Proposal = result.Proposal
	report.Indicators = reporting.LatestValues(result.Snapshot)

	if err := writeReports(cfg, report, bars, result, log); err != nil {
		return err
	}

	if server != nil {
		log.Info("serving metrics until interrupted", logger.String("addr", cfg.Metrics.Addr))
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
	return nil
}

// reportPath places a bare file name under the symbol's results directory
func reportPath(cfg *config.Config, path string) string {
	if path == "" || filepath.Base(path) != path {
		return path
	}
	return filepath.Join(reporting.DefaultOutputDir(cfg.Market.Symbol, cfg.Market.Interval), path)
}

func writeReports(cfg *config.Config, report *reporting.Report, bars []types.OHLCV, result *orchestrator.Result, log logger.Logger) error {
	if path := reportPath(cfg, cfg.Report.ExcelPath); path != "" {
		if err := reporting.ExportExcel(path, bars, result.Snapshot, result.Proposal); err != nil {
			return err
		}
		log.Info("exported workbook", logger.String("path", path))
	}
	if path := reportPath(cfg, cfg.Report.ChartPath); path != "" {
		title := fmt.Sprintf("%s %s", cfg.Market.Symbol, cfg.Market.Interval)
		if err := reporting.RenderChartFile(path, title, bars, result.Snapshot); err != nil {
			return err
		}
		log.Info("rendered chart", logger.String("path", path))
	}
	if path := reportPath(cfg, cfg.Report.JSONPath); path != "" {
		if err := reporting.WriteJSON(path, report); err != nil {
			return err
		}
		log.Info("wrote report", logger.String("path", path))
	}
	return nil
}

func startMetricsServer(addr string, health *monitoring.HealthChecker, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/health", health)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", logger.Err(err))
		}
	}()
	return server
}
