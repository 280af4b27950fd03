package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"StockIndicators/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testBar(day int, adjClose float64) model.OHLCV {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
	return model.OHLCV{
		Date:     d,
		Open:     adjClose - 1,
		High:     adjClose + 1,
		Low:      adjClose - 2,
		Close:    adjClose,
		AdjClose: adjClose,
		Volume:   1000,
	}
}

func TestInsertDailyBars_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertDailyBars(ctx, "AAPL", []model.OHLCV{testBar(0, 100), testBar(1, 101)}))
	require.NoError(t, s.InsertDailyBars(ctx, "SPY", []model.OHLCV{testBar(0, 500)}))

	points, err := s.LoadPricePoints(ctx)
	require.NoError(t, err)
	require.Len(t, points, 3)

	byKey := make(map[string]float64)
	for _, p := range points {
		byKey[p.Ticker+p.Date.Format("2006-01-02")] = p.AdjClose
	}
	require.Equal(t, 100.0, byKey["AAPL2024-03-01"])
	require.Equal(t, 101.0, byKey["AAPL2024-03-02"])
	require.Equal(t, 500.0, byKey["SPY2024-03-01"])
}

func TestInsertDailyBars_UpsertRefreshes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertDailyBars(ctx, "AAPL", []model.OHLCV{testBar(0, 100)}))
	// Same (ticker, date) with a corrected adjusted close.
	require.NoError(t, s.InsertDailyBars(ctx, "AAPL", []model.OHLCV{testBar(0, 99.5)}))

	points, err := s.LoadPricePoints(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, 99.5, points[0].AdjClose)
}

func TestReplaceIndicators_Rewrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	d0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d1 := d0.AddDate(0, 0, 1)

	first := []model.IndicatorRow{
		{Date: d0, Ticker: "SPY", AdjClose: 500, MA30: 500, RSI14: 100},
		{Date: d0, Ticker: "AAPL", AdjClose: 100, MA30: 100, RSI14: 100},
	}
	require.NoError(t, s.ReplaceIndicators(ctx, first))

	got, err := s.LoadIndicators(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Read back ordered by ticker then date.
	require.Equal(t, "AAPL", got[0].Ticker)
	require.Equal(t, "SPY", got[1].Ticker)

	second := []model.IndicatorRow{
		{Date: d0, Ticker: "AAPL", AdjClose: 100, MA30: 100, RSI14: 100},
		{Date: d1, Ticker: "AAPL", AdjClose: 102, MA30: 101, RSI14: 100},
	}
	require.NoError(t, s.ReplaceIndicators(ctx, second))

	got, err = s.LoadIndicators(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, d0, got[0].Date)
	require.Equal(t, d1, got[1].Date)
	require.Equal(t, 101.0, got[1].MA30)
}

func TestReplaceIndicators_EmptyClearsTable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	d0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.ReplaceIndicators(ctx, []model.IndicatorRow{
		{Date: d0, Ticker: "SPY", AdjClose: 500, MA30: 500, RSI14: 100},
	}))
	require.NoError(t, s.ReplaceIndicators(ctx, nil))

	got, err := s.LoadIndicators(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}
