package pipeline

import "StockIndicators/internal/model"

// difference computes day-over-day price changes within one ticker's
// ordered sequence and splits each change into non-negative gain and
// loss magnitudes. The first row has no previous close, so its PriceDiff
// stays nil and both gain and loss are 0: an unknown comparison
// satisfies neither > 0 nor < 0.
func difference(seq []model.PricePoint) []model.EnrichedPoint {
	out := make([]model.EnrichedPoint, len(seq))
	for i, p := range seq {
		out[i].PricePoint = p
		if i == 0 {
			continue
		}
		d := p.AdjClose - seq[i-1].AdjClose
		out[i].PriceDiff = &d
		if d > 0 {
			out[i].Gain = d
		} else if d < 0 {
			out[i].Loss = -d
		}
	}
	return out
}
