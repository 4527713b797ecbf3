package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	err := r.appendEvent(ctx, tableLLMEvents,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs, success, data.ErrorMessage},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) LLMUsage(ctx context.Context) ([]LLMUsage, error) {
	query, args := builder().
		Select(
			"model",
			entsql.Count("*"),
			"COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0)",
			"COALESCE("+entsql.Sum("input_tokens")+", 0)",
			"COALESCE("+entsql.Sum("output_tokens")+", 0)",
		).
		From(builder().Table(tableLLMEvents)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sum LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Model, &u.Requests, &u.Failures, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
