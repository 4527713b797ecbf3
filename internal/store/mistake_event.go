package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendMistakeEvent(ctx context.Context, data MistakeEventData) error {
	err := r.appendEvent(ctx, tableMistakeEvents,
		[]string{"item_id", "from_status", "to_status", "cause"},
		[]any{data.ItemID, data.FromStatus, data.ToStatus, data.Trigger},
	)
	if err != nil {
		return fmt.Errorf("save mistake event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryMistakeEvents(ctx context.Context, opts QueryOpts) ([]MistakeEventRecord, error) {
	query, args := selectEvents(tableMistakeEvents, opts, "item_id", "from_status", "to_status", "cause")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mistake events: %w", err)
	}
	defer rows.Close()

	var records []MistakeEventRecord
	for rows.Next() {
		var (
			rec MistakeEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.ItemID, &rec.FromStatus, &rec.ToStatus, &rec.Trigger); err != nil {
			return nil, fmt.Errorf("scan mistake event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MistakeStatuses replays transitions oldest first so the last one wins.
func (r *eventRepo) MistakeStatuses(ctx context.Context) (map[string]string, error) {
	events, err := r.QueryMistakeEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}
	statuses := make(map[string]string)
	for i := len(events) - 1; i >= 0; i-- {
		statuses[events[i].ItemID] = events[i].ToStatus
	}
	return statuses, nil
}
