package pipeline

import "StockIndicators/internal/model"

// Window sizes in rows; windows are row-based, not calendar-based, and
// never cross ticker boundaries.
const (
	maWindow  = 30
	rsiWindow = 14
)

// rollingSum is a fixed-capacity trailing window backed by a ring
// buffer, maintaining its sum incrementally so each push is O(1).
type rollingSum struct {
	buf  []float64
	head int
	n    int
	sum  float64
}

func newRollingSum(size int) *rollingSum {
	return &rollingSum{buf: make([]float64, size)}
}

// push appends v, evicting the oldest value once the window is full, and
// returns the window sum and the number of values currently held.
func (r *rollingSum) push(v float64) (sum float64, n int) {
	if r.n == len(r.buf) {
		r.sum -= r.buf[r.head]
		r.buf[r.head] = v
		r.head = (r.head + 1) % len(r.buf)
	} else {
		r.buf[(r.head+r.n)%len(r.buf)] = v
		r.n++
	}
	r.sum += v
	return r.sum, r.n
}

// aggregate fills the trailing-window fields for one ticker's enriched
// sequence: the 30-row mean of adj_close and the 14-row sums of gain and
// loss. A partial window at the start of the sequence covers however
// many rows exist so far; the mean divides by that actual row count,
// while the gain/loss sums are left as raw sums for the RSI stage.
func aggregate(seq []model.EnrichedPoint) {
	prices := newRollingSum(maWindow)
	gains := newRollingSum(rsiWindow)
	losses := newRollingSum(rsiWindow)
	for i := range seq {
		sum, n := prices.push(seq[i].AdjClose)
		seq[i].MA30 = sum / float64(n)
		seq[i].SumGain, _ = gains.push(seq[i].Gain)
		seq[i].SumLoss, _ = losses.push(seq[i].Loss)
	}
}
