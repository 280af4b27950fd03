package collector

import (
	"context"
	"time"

	"StockIndicators/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.OHLCV
	Errs map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(_ context.Context, ticker string, _, _ time.Time) ([]model.OHLCV, error) {
	if err := m.Errs[ticker]; err != nil {
		return nil, err
	}
	return m.Bars[ticker], nil
}
