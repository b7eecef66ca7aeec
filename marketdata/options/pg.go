package options

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PGBatchFeed loads option parameters from a Postgres table with columns
// (symbol, strike, rate, dividend_yield, vol).
type PGBatchFeed struct {
	db    *sql.DB
	table string
}

// OpenPGBatchFeed opens a Postgres connection for the given DSN. The
// caller owns the feed and should Close it when done.
func OpenPGBatchFeed(dsn, table string) (*PGBatchFeed, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("OpenPGBatchFeed: %w", err)
	}
	return NewPGBatchFeed(db, table), nil
}

// NewPGBatchFeed wraps an existing connection pool.
func NewPGBatchFeed(db *sql.DB, table string) *PGBatchFeed {
	return &PGBatchFeed{db: db, table: table}
}

func (f *PGBatchFeed) Close() error {
	return f.db.Close()
}

// Batch loads the requested symbols in request order. Every symbol must
// resolve; a missing row is an error, not a silent gap.
func (f *PGBatchFeed) Batch(symbols []string) (Batch, error) {
	query := fmt.Sprintf(
		`SELECT symbol, strike, rate, dividend_yield, vol FROM %s WHERE symbol = ANY($1)`,
		pq.QuoteIdentifier(f.table))
	rows, err := f.db.Query(query, pq.Array(symbols))
	if err != nil {
		return Batch{}, fmt.Errorf("PGBatchFeed.Batch: %w", err)
	}
	defer rows.Close()

	found := make(map[string]Entry, len(symbols))
	for rows.Next() {
		var sym string
		var e Entry
		if err := rows.Scan(&sym, &e.Strike, &e.Rate, &e.DividendYield, &e.Vol); err != nil {
			return Batch{}, fmt.Errorf("PGBatchFeed.Batch: scan: %w", err)
		}
		found[sym] = e
	}
	if err := rows.Err(); err != nil {
		return Batch{}, fmt.Errorf("PGBatchFeed.Batch: %w", err)
	}

	return assemble(symbols, func(sym string) (Entry, bool) {
		e, ok := found[sym]
		return e, ok
	})
}
