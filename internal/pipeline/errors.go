package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// DuplicateKeyError reports two input rows sharing the same (ticker, date).
type DuplicateKeyError struct {
	Ticker string
	Date   time.Time
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate price row for %s on %s", e.Ticker, e.Date.Format("2006-01-02"))
}

// InvalidPriceError reports a non-finite or negative adjusted close.
// Such a value must be rejected up front: once inside a rolling sum it
// would corrupt every later row of the ticker's window.
type InvalidPriceError struct {
	Ticker string
	Date   time.Time
	Price  float64
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid adj_close %v for %s on %s", e.Price, e.Ticker, e.Date.Format("2006-01-02"))
}

// PartitionError wraps a validation failure for one ticker partition.
type PartitionError struct {
	Ticker string
	Err    error
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("ticker %s: %v", e.Ticker, e.Err)
}

func (e *PartitionError) Unwrap() error { return e.Err }

// PartitionErrors aggregates failures across ticker partitions, ordered
// by ticker. Tickers that validated cleanly still produce output; whether
// to use that output or abort the whole run is the caller's policy.
type PartitionErrors []*PartitionError

func (es PartitionErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual partition errors to errors.Is/errors.As.
func (es PartitionErrors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}
	return errs
}
