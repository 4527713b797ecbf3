package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo with JSON-encoded rows.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}
	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	if snap.Sequence == 0 {
		last, err := r.seq.Last(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = last
	}

	query, args := builder().Insert(tableSnapshots).
		Columns("sequence", "created_at", "data").
		Values(snap.Sequence, ts.UnixMilli(), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := builder().
		Select("id", "sequence", "created_at", "data").
		From(builder().Table(tableSnapshots)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		snap Snapshot
		ts   int64
		data string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.ID, &snap.Sequence, &ts, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	snap.Timestamp = fromMillis(ts)
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest row that falls outside the keep window.
	query, args := builder().
		Select("id").
		From(builder().Table(tableSnapshots)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(tableSnapshots).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
