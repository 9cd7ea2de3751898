// Package journal keeps an append-only SQLite record of pipeline runs.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/olaskid2005/SignalBot/internal/logger"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol         TEXT NOT NULL,
	interval       TEXT NOT NULL,
	bar_time       TEXT NOT NULL,
	decision       TEXT NOT NULL,
	path           TEXT NOT NULL,
	score          REAL NOT NULL,
	entry_price    REAL NOT NULL,
	position_size  REAL NOT NULL,
	stop_loss      REAL NOT NULL DEFAULT 0,
	take_profit    REAL NOT NULL DEFAULT 0,
	risk_reward    REAL NOT NULL DEFAULT 0,
	created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_symbol ON evaluations(symbol, interval);
CREATE INDEX IF NOT EXISTS idx_evaluations_bar_time ON evaluations(bar_time);
`

// Entry is one journaled evaluation and its proposal
type Entry struct {
	ID           int64          `json:"id"`
	Symbol       string         `json:"symbol"`
	Interval     string         `json:"interval"`
	BarTime      time.Time      `json:"bar_time"`
	Decision     types.Decision `json:"decision"`
	Path         string         `json:"path"`
	Score        float64        `json:"score"`
	EntryPrice   float64        `json:"entry_price"`
	PositionSize float64        `json:"position_size"`
	StopLoss     float64        `json:"stop_loss"`
	TakeProfit   float64        `json:"take_profit"`
	RiskReward   float64        `json:"risk_reward"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Journal persists entries to SQLite
type Journal struct {
	mu  sync.Mutex
	db  *sql.DB
	log logger.Logger
}

// Open opens (or creates) the journal database at path
func Open(path string, log logger.Logger) (*Journal, error) {
	if log == nil {
		log = logger.NewNop()
	}

	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_sync=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %w", err)
	}

	log.Info("opened signal journal", logger.String("path", path))
	return &Journal{db: db, log: log}, nil
}

// Record appends an entry and returns its id. A zero CreatedAt is set to now.
func (j *Journal) Record(ctx context.Context, e Entry) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	res, err := j.db.ExecContext(ctx,
		`INSERT INTO evaluations (symbol, interval, bar_time, decision, path, score,
			entry_price, position_size, stop_loss, take_profit, risk_reward, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Symbol,
		e.Interval,
		e.BarTime.UTC().Format(time.RFC3339Nano),
		e.Decision.String(),
		e.Path,
		e.Score,
		e.EntryPrice,
		e.PositionSize,
		e.StopLoss,
		e.TakeProfit,
		e.RiskReward,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record evaluation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read journal id: %w", err)
	}
	j.log.Debug("journaled evaluation",
		logger.Int("id", int(id)),
		logger.String("decision", e.Decision.String()))
	return id, nil
}

// Recent returns the last n entries, newest first
func (j *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, symbol, interval, bar_time, decision, path, score,
			entry_price, position_size, stop_loss, take_profit, risk_reward, created_at
		 FROM evaluations ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                  Entry
			barTime, createdAt string
			decision           string
		)
		if err := rows.Scan(&e.ID, &e.Symbol, &e.Interval, &barTime, &decision, &e.Path, &e.Score,
			&e.EntryPrice, &e.PositionSize, &e.StopLoss, &e.TakeProfit, &e.RiskReward, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		e.Decision = types.ParseDecision(decision)
		if e.BarTime, err = time.Parse(time.RFC3339Nano, barTime); err != nil {
			return nil, fmt.Errorf("invalid bar time %q in journal: %w", barTime, err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("invalid created time %q in journal: %w", createdAt, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the journal database
func (j *Journal) Close() error {
	return j.db.Close()
}
