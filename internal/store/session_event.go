package store

import (
	"context"
	"encoding/json"
	"fmt"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	ids := data.MasteredIDs
	if ids == nil {
		ids = []string{}
	}
	mastered, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal mastered ids: %w", err)
	}

	var started int64
	if !data.StartedAt.IsZero() {
		started = data.StartedAt.UnixMilli()
	}

	err = r.appendEvent(ctx, tableSessionEvents,
		[]string{"session_id", "started_at", "mode", "subject", "correct", "total", "max_combo", "xp_earned", "mastered_ids"},
		[]any{data.SessionID, started, data.Mode, data.Subject, data.Correct, data.Total, data.MaxCombo, data.XPEarned, string(mastered)},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	query, args := selectEvents(tableSessionEvents, opts,
		"session_id", "started_at", "mode", "subject", "correct", "total", "max_combo", "xp_earned", "mastered_ids")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var records []SessionEventRecord
	for rows.Next() {
		var (
			rec      SessionEventRecord
			ts       int64
			started  int64
			mastered string
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &started, &rec.Mode, &rec.Subject,
			&rec.Correct, &rec.Total, &rec.MaxCombo, &rec.XPEarned, &mastered); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		if err := json.Unmarshal([]byte(mastered), &rec.MasteredIDs); err != nil {
			return nil, fmt.Errorf("decode mastered ids: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		if started != 0 {
			rec.StartedAt = fromMillis(started)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
