package model

import "time"

// OHLCV represents a single daily bar as delivered by a data source.
type OHLCV struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// PricePoint is one (ticker, date) observation of the adjusted close.
// It is the input row of the indicator pipeline.
type PricePoint struct {
	Date     time.Time
	Ticker   string
	AdjClose float64
}

// Point converts a bar into the pipeline's input row.
func (b OHLCV) Point(ticker string) PricePoint {
	return PricePoint{Date: b.Date, Ticker: ticker, AdjClose: b.AdjClose}
}
