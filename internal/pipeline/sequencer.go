package pipeline

import (
	"math"
	"sort"

	"StockIndicators/internal/model"
)

// sequence groups points by ticker and sorts each group ascending by
// date. A group that fails validation is dropped and reported through a
// PartitionError; the remaining tickers are unaffected.
func sequence(points []model.PricePoint) (map[string][]model.PricePoint, PartitionErrors) {
	groups := make(map[string][]model.PricePoint)
	for _, p := range points {
		groups[p.Ticker] = append(groups[p.Ticker], p)
	}

	var errs PartitionErrors
	for ticker, seq := range groups {
		sort.SliceStable(seq, func(i, j int) bool { return seq[i].Date.Before(seq[j].Date) })
		if err := validate(seq); err != nil {
			errs = append(errs, &PartitionError{Ticker: ticker, Err: err})
			delete(groups, ticker)
		}
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Ticker < errs[j].Ticker })
	return groups, errs
}

// validate checks a date-sorted sequence for non-finite or negative
// prices and duplicate dates.
func validate(seq []model.PricePoint) error {
	for i, p := range seq {
		if math.IsNaN(p.AdjClose) || math.IsInf(p.AdjClose, 0) || p.AdjClose < 0 {
			return &InvalidPriceError{Ticker: p.Ticker, Date: p.Date, Price: p.AdjClose}
		}
		if i > 0 && p.Date.Equal(seq[i-1].Date) {
			return &DuplicateKeyError{Ticker: p.Ticker, Date: p.Date}
		}
	}
	return nil
}
