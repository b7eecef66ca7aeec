// Package options supplies option-parameter batches to the boundary
// solver: parallel strike/rate/dividend/volatility slices keyed by
// instrument symbol.
package options

import "fmt"

// Batch is a set of options solved together. All slices are parallel;
// row i describes the option named by Symbols[i].
type Batch struct {
	Symbols        []string
	Strikes        []float64
	Rates          []float64
	DividendYields []float64
	Vols           []float64
}

// Len returns the number of options in the batch.
func (b Batch) Len() int {
	return len(b.Symbols)
}

// Validate checks the parallel-slice invariants the solver relies on.
func (b Batch) Validate() error {
	n := len(b.Symbols)
	if n == 0 {
		return fmt.Errorf("Batch.Validate: batch is empty")
	}
	if len(b.Strikes) != n || len(b.Rates) != n || len(b.DividendYields) != n || len(b.Vols) != n {
		return fmt.Errorf("Batch.Validate: slice lengths (strikes=%d, rates=%d, dividends=%d, vols=%d) do not match %d symbols",
			len(b.Strikes), len(b.Rates), len(b.DividendYields), len(b.Vols), n)
	}
	for i := 0; i < n; i++ {
		if b.Strikes[i] <= 0 {
			return fmt.Errorf("Batch.Validate: %s: strike must be positive, got %g", b.Symbols[i], b.Strikes[i])
		}
		if b.Vols[i] <= 0 {
			return fmt.Errorf("Batch.Validate: %s: vol must be positive, got %g", b.Symbols[i], b.Vols[i])
		}
		if b.Rates[i] < 0 {
			return fmt.Errorf("Batch.Validate: %s: rate must be nonnegative, got %g", b.Symbols[i], b.Rates[i])
		}
		if b.DividendYields[i] < 0 {
			return fmt.Errorf("Batch.Validate: %s: dividend yield must be nonnegative, got %g", b.Symbols[i], b.DividendYields[i])
		}
	}
	return nil
}

// Entry holds the per-option parameters behind a symbol.
type Entry struct {
	Strike        float64
	Rate          float64
	DividendYield float64
	Vol           float64
}

// BatchFeed supplies option batches in the order the symbols are
// requested.
type BatchFeed interface {
	Batch(symbols []string) (Batch, error)
}

// MapBatchFeed is a static map-backed implementation for
// development/testing.
type MapBatchFeed struct {
	entries map[string]Entry
}

func NewMapBatchFeed(entries map[string]Entry) *MapBatchFeed {
	return &MapBatchFeed{entries: entries}
}

func (m *MapBatchFeed) Batch(symbols []string) (Batch, error) {
	return assemble(symbols, func(sym string) (Entry, bool) {
		e, ok := m.entries[sym]
		return e, ok
	})
}

// assemble builds a Batch in request order from a lookup function.
func assemble(symbols []string, lookup func(string) (Entry, bool)) (Batch, error) {
	b := Batch{
		Symbols:        make([]string, 0, len(symbols)),
		Strikes:        make([]float64, 0, len(symbols)),
		Rates:          make([]float64, 0, len(symbols)),
		DividendYields: make([]float64, 0, len(symbols)),
		Vols:           make([]float64, 0, len(symbols)),
	}
	for _, sym := range symbols {
		e, ok := lookup(sym)
		if !ok {
			return Batch{}, fmt.Errorf("options: no entry for symbol %q", sym)
		}
		b.Symbols = append(b.Symbols, sym)
		b.Strikes = append(b.Strikes, e.Strike)
		b.Rates = append(b.Rates, e.Rate)
		b.DividendYields = append(b.DividendYields, e.DividendYield)
		b.Vols = append(b.Vols, e.Vol)
	}
	return b, nil
}
