package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendRewardEvent(ctx context.Context, data RewardEventData) error {
	err := r.appendEvent(ctx, tableRewardEvents,
		[]string{"kind", "amount", "item_id", "reason"},
		[]any{data.Kind, data.Amount, data.ItemID, data.Reason},
	)
	if err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error) {
	query, args := selectEvents(tableRewardEvents, opts, "kind", "amount", "item_id", "reason")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	defer rows.Close()

	var records []RewardEventRecord
	for rows.Next() {
		var (
			rec RewardEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.Kind, &rec.Amount, &rec.ItemID, &rec.Reason); err != nil {
			return nil, fmt.Errorf("scan reward event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RewardTotals returns total XP and the net coin movement. Purchases count
// against coins.
func (r *eventRepo) RewardTotals(ctx context.Context, after int64) (xp, coins int, err error) {
	query, args := builder().
		Select("kind", "COALESCE("+entsql.Sum("amount")+", 0)").
		From(builder().Table(tableRewardEvents)).
		Where(entsql.GT("sequence", after)).
		GroupBy("kind").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("sum reward events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind  string
			total int
		)
		if err := rows.Scan(&kind, &total); err != nil {
			return 0, 0, fmt.Errorf("scan reward totals: %w", err)
		}
		switch kind {
		case RewardXP:
			xp += total
		case RewardCoins, RewardPurchase:
			coins += total
		}
	}
	return xp, coins, rows.Err()
}

func (r *eventRepo) OwnedItems(ctx context.Context, after int64) ([]string, error) {
	query, args := builder().
		Select("item_id").
		From(builder().Table(tableRewardEvents)).
		Where(entsql.And(entsql.EQ("kind", RewardPurchase), entsql.GT("sequence", after))).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query owned items: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan owned item: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
