package model

import "time"

// EnrichedPoint extends a PricePoint with every derived field of the
// pipeline. PriceDiff is nil for the first row of a ticker's sequence;
// a nil diff is not the same as a zero diff and downstream stages treat
// it as an unknown comparison.
type EnrichedPoint struct {
	PricePoint
	PriceDiff *float64
	Gain      float64
	Loss      float64
	MA30      float64
	SumGain   float64
	SumLoss   float64
	AvgGain   float64
	AvgLoss   float64
	RSI14     float64
}

// IndicatorRow is the published output row: the original price plus the
// two exposed indicators. Intermediate fields stay internal.
type IndicatorRow struct {
	Date     time.Time
	Ticker   string
	AdjClose float64
	MA30     float64
	RSI14    float64
}
