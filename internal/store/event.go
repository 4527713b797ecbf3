package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence shared by every
// event table. Per-table row IDs cannot order a mistake transition against
// the session that caused it; the shared sequence can.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Last returns the most recently issued sequence number, zero before the
// first event.
func (sc *sequenceCounter) Last(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var next int64
	err := sc.db.QueryRowContext(ctx, `SELECT next_val FROM global_sequence WHERE id = 1`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	return next - 1, nil
}

// eventRepo implements EventRepo on top of the shared sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// appendEvent inserts one row into table, prefixing the shared sequence and
// timestamp columns.
func (r *eventRepo) appendEvent(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	cols := append([]string{"sequence", "created_at"}, columns...)
	vals := append([]any{seqNum, r.clock().UnixMilli()}, values...)

	query, args := builder().Insert(table).Columns(cols...).Values(vals...).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a newest-first query over table honouring opts.
func selectEvents(table string, opts QueryOpts, columns ...string) (string, []any) {
	cols := append([]string{"sequence", "created_at"}, columns...)
	sel := builder().Select(cols...).From(builder().Table(table))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}

	sel = sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel.Query()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
