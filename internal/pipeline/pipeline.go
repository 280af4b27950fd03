package pipeline

import (
	"runtime"
	"sort"
	"sync"

	"StockIndicators/internal/model"
)

// Pipeline computes per-ticker technical indicators from daily adjusted
// close prices. Tickers are independent partitions with no shared state,
// so they are fanned out across Workers goroutines and merged only for
// the final ordering.
type Pipeline struct {
	Workers int
}

// New returns a Pipeline with one worker per CPU.
func New() *Pipeline {
	return &Pipeline{Workers: runtime.NumCPU()}
}

// Run enriches every input row with its derived indicator fields. Input
// order does not matter; the returned slice is sorted by ticker then
// date. Tickers whose input fails validation are omitted from the output
// and reported through PartitionErrors; err is nil only when every
// partition succeeded. Identical input always yields identical output.
func (p *Pipeline) Run(points []model.PricePoint) ([]model.EnrichedPoint, error) {
	groups, errs := sequence(points)

	tickers := make([]string, 0, len(groups))
	for t := range groups {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	workers := p.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	results := make([][]model.EnrichedPoint, len(tickers))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = enrich(groups[tickers[idx]])
			}
		}()
	}
	for idx := range tickers {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	var out []model.EnrichedPoint
	for _, seq := range results {
		out = append(out, seq...)
	}
	// tickers were walked in sorted order and each sequence is already
	// date-ordered, so out is sorted by (ticker, date).

	if len(errs) > 0 {
		return out, errs
	}
	return out, nil
}

// enrich runs the stage chain over one ticker's ordered sequence.
func enrich(seq []model.PricePoint) []model.EnrichedPoint {
	enriched := difference(seq)
	aggregate(enriched)
	applyRSI(enriched)
	return enriched
}

// Rows assembles the published output table from enriched points,
// keeping only the exposed columns.
func Rows(points []model.EnrichedPoint) []model.IndicatorRow {
	rows := make([]model.IndicatorRow, len(points))
	for i, p := range points {
		rows[i] = model.IndicatorRow{
			Date:     p.Date,
			Ticker:   p.Ticker,
			AdjClose: p.AdjClose,
			MA30:     p.MA30,
			RSI14:    p.RSI14,
		}
	}
	return rows
}
