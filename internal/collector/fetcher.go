package collector

import (
	"context"
	"time"

	"StockIndicators/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchDailyHistory returns one ticker's daily bars for [start, end),
	// sorted ascending by date.
	FetchDailyHistory(ctx context.Context, ticker string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
