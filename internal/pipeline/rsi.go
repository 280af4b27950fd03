package pipeline

import "StockIndicators/internal/model"

// rsiDivisor is the constant denominator for the gain/loss averages.
// The averages divide by the full window size even while the window is
// still partial, so the first rsiWindow-1 rows of every sequence
// under-estimate both. Downstream consumers depend on those exact
// numbers; do not switch to dividing by the actual row count.
const rsiDivisor = 14.0

// applyRSI derives avg_gain, avg_loss and rsi_14 from the trailing sums.
// avg_loss == 0 is the defined RSI-100 branch, not a division error: it
// covers both loss-free windows and partial windows with no losses yet.
func applyRSI(seq []model.EnrichedPoint) {
	for i := range seq {
		seq[i].AvgGain = seq[i].SumGain / rsiDivisor
		seq[i].AvgLoss = seq[i].SumLoss / rsiDivisor
		if seq[i].AvgLoss == 0 {
			seq[i].RSI14 = 100
		} else {
			seq[i].RSI14 = 100 - 100/(1+seq[i].AvgGain/seq[i].AvgLoss)
		}
	}
}
