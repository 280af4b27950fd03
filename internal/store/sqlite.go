package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockIndicators/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore persists raw daily bars and the materialized indicator
// table in a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers see a consistent table while a recompute writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stock_prices (
			date      TEXT NOT NULL,
			open      REAL,
			high      REAL,
			low       REAL,
			close     REAL,
			adj_close REAL NOT NULL,
			volume    REAL,
			ticker    TEXT NOT NULL,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE TABLE IF NOT EXISTS stock_indicators (
			date      TEXT NOT NULL,
			ticker    TEXT NOT NULL,
			adj_close REAL NOT NULL,
			ma_30     REAL NOT NULL,
			rsi_14    REAL NOT NULL,
			PRIMARY KEY (ticker, date)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// InsertDailyBars upserts one ticker's bars into stock_prices. Re-running
// an ingest for an overlapping date range refreshes the stored values
// instead of duplicating rows.
func (s *SQLiteStore) InsertDailyBars(ctx context.Context, ticker string, bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO stock_prices
		(date, open, high, low, close, adj_close, volume, ticker)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(ticker, date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, adj_close=excluded.adj_close,
			volume=excluded.volume`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, b.Date.Format(dateLayout),
			b.Open, b.High, b.Low, b.Close, b.AdjClose, b.Volume, ticker); err != nil {
			return fmt.Errorf("insert bar %s %s: %w", ticker, b.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

// LoadPricePoints returns every stored (date, ticker, adj_close) row.
// No ordering is guaranteed; the pipeline sorts per ticker itself.
func (s *SQLiteStore) LoadPricePoints(ctx context.Context) ([]model.PricePoint, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, ticker, adj_close FROM stock_prices`)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	var points []model.PricePoint
	for rows.Next() {
		var d string
		var p model.PricePoint
		if err := rows.Scan(&d, &p.Ticker, &p.AdjClose); err != nil {
			return nil, fmt.Errorf("scan price row: %w", err)
		}
		if p.Date, err = parseDate(d); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// ReplaceIndicators rewrites the stock_indicators table in one
// transaction, so readers never observe a half-materialized table.
func (s *SQLiteStore) ReplaceIndicators(ctx context.Context, indRows []model.IndicatorRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stock_indicators`); err != nil {
		return fmt.Errorf("clear indicators: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO stock_indicators
		(date, ticker, adj_close, ma_30, rsi_14) VALUES (?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range indRows {
		if _, err := stmt.ExecContext(ctx, r.Date.Format(dateLayout),
			r.Ticker, r.AdjClose, r.MA30, r.RSI14); err != nil {
			return fmt.Errorf("insert indicator %s %s: %w", r.Ticker, r.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

// LoadIndicators returns the materialized table ordered by ticker, date.
func (s *SQLiteStore) LoadIndicators(ctx context.Context) ([]model.IndicatorRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, ticker, adj_close, ma_30, rsi_14
		FROM stock_indicators ORDER BY ticker, date`)
	if err != nil {
		return nil, fmt.Errorf("query indicators: %w", err)
	}
	defer rows.Close()

	var out []model.IndicatorRow
	for rows.Next() {
		var d string
		var r model.IndicatorRow
		if err := rows.Scan(&d, &r.Ticker, &r.AdjClose, &r.MA30, &r.RSI14); err != nil {
			return nil, fmt.Errorf("scan indicator row: %w", err)
		}
		if r.Date, err = parseDate(d); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func parseDate(d string) (t time.Time, err error) {
	if t, err = time.Parse(dateLayout, d); err != nil {
		err = fmt.Errorf("parse stored date %q: %w", d, err)
	}
	return t, err
}
