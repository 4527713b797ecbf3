package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "lumi.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceIsGlobal(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Mode: "conquer", Correct: 2, Total: 2}); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}
	if err := repo.AppendMistakeEvent(ctx, MistakeEventData{ItemID: "err1", FromStatus: "new", ToStatus: "mastered", Trigger: "conquer"}); err != nil {
		t.Fatalf("AppendMistakeEvent: %v", err)
	}

	sessions, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QuerySessionEvents: %v", err)
	}
	mistakes, err := repo.QueryMistakeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryMistakeEvents: %v", err)
	}
	if len(sessions) != 1 || len(mistakes) != 1 {
		t.Fatalf("got %d sessions and %d mistakes, want 1 each", len(sessions), len(mistakes))
	}
	if sessions[0].Sequence >= mistakes[0].Sequence {
		t.Errorf("sequence not global: session=%d mistake=%d", sessions[0].Sequence, mistakes[0].Sequence)
	}
}

func TestSessionEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	want := SessionEventData{
		SessionID:   "abc",
		Mode:        "conquer",
		Subject:     "math",
		Correct:     6,
		Total:       7,
		MaxCombo:    3,
		XPEarned:    135,
		MasteredIDs: []string{"err1", "err4"},
	}
	if err := repo.AppendSessionEvent(ctx, want); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}

	got, err := repo.QuerySessionEvents(ctx, QueryOpts{Limit: 5})
	if err != nil {
		t.Fatalf("QuerySessionEvents: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	rec := got[0]
	if rec.XPEarned != 135 || rec.MaxCombo != 3 || rec.Subject != "math" {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.MasteredIDs) != 2 || rec.MasteredIDs[1] != "err4" {
		t.Errorf("MasteredIDs = %v", rec.MasteredIDs)
	}
	if time.Since(rec.Timestamp) > time.Minute {
		t.Errorf("Timestamp = %v, want recent", rec.Timestamp)
	}
}

func TestQueryOptsLimitAndAfter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendRewardEvent(ctx, RewardEventData{Kind: RewardXP, Amount: 10}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.QueryRewardEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	if all[0].Sequence < all[4].Sequence {
		t.Error("events should be newest first")
	}

	limited, _ := repo.QueryRewardEvents(ctx, QueryOpts{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("Limit 2 returned %d", len(limited))
	}

	after, _ := repo.QueryRewardEvents(ctx, QueryOpts{After: all[2].Sequence})
	if len(after) != 2 {
		t.Errorf("After returned %d, want 2", len(after))
	}
}

func TestMistakeStatusesLastWins(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []MistakeEventData{
		{ItemID: "err1", FromStatus: "new", ToStatus: "mastered", Trigger: "confirm"},
		{ItemID: "err2", FromStatus: "new", ToStatus: "reviewing", Trigger: "review"},
		{ItemID: "err1", FromStatus: "mastered", ToStatus: "reviewing", Trigger: "confirm"},
	}
	for _, e := range events {
		if err := repo.AppendMistakeEvent(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.MistakeStatuses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got["err1"] != "reviewing" || got["err2"] != "reviewing" {
		t.Errorf("statuses = %v", got)
	}
}

func TestRewardTotalsAndOwnedItems(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []RewardEventData{
		{Kind: RewardXP, Amount: 250, Reason: "daily conquer"},
		{Kind: RewardCoins, Amount: 850, Reason: "opening balance"},
		{Kind: RewardPurchase, Amount: -100, ItemID: "makeup_card"},
		{Kind: RewardXP, Amount: 135},
	}
	for _, e := range events {
		if err := repo.AppendRewardEvent(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	xp, coins, err := repo.RewardTotals(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if xp != 385 {
		t.Errorf("xp = %d, want 385", xp)
	}
	if coins != 750 {
		t.Errorf("coins = %d, want 750", coins)
	}

	owned, err := repo.OwnedItems(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != 1 || owned[0] != "makeup_card" {
		t.Errorf("owned = %v", owned)
	}
}

func TestRewardTotalsEmpty(t *testing.T) {
	s := openTestStore(t)
	xp, coins, err := s.EventRepo().RewardTotals(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if xp != 0 || coins != 0 {
		t.Errorf("xp=%d coins=%d, want 0", xp, coins)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", InputTokens: 10, OutputTokens: 5, Success: true})
	repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Success: false, ErrorMessage: "boom"})
	repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "gemini", Model: "g", InputTokens: 7, OutputTokens: 3, Success: true})

	usage, err := repo.LLMUsage(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(usage) != 2 {
		t.Fatalf("models = %d, want 2", len(usage))
	}
	g, m := usage[0], usage[1]
	if g.Model != "g" || g.Requests != 1 || g.Failures != 0 || g.InputTokens != 7 {
		t.Errorf("g usage = %+v", g)
	}
	if m.Model != "m" || m.Requests != 2 || m.Failures != 1 || m.InputTokens != 10 || m.OutputTokens != 5 {
		t.Errorf("m usage = %+v", m)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot")
	}

	base := time.Now()
	for i, coins := range []int{850, 750} {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Data:      SnapshotData{Version: 1, Wallet: &WalletSnapshotData{Level: 5, LevelXP: 3200, Coins: coins}},
		})
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if snap == nil || snap.Data.Wallet == nil {
		t.Fatal("expected wallet snapshot")
	}
	if snap.Data.Wallet.Coins != 750 || snap.Data.Wallet.Level != 5 {
		t.Errorf("wallet = %+v, want level 5 with 750 coins", snap.Data.Wallet)
	}
}

func TestSnapshotStampsLastSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()
	for range 3 {
		if err := events.AppendRewardEvent(ctx, RewardEventData{Kind: RewardXP, Amount: 10}); err != nil {
			t.Fatal(err)
		}
	}

	snap := &Snapshot{Data: SnapshotData{Version: 1}}
	if err := s.SnapshotRepo().Save(ctx, snap); err != nil {
		t.Fatal(err)
	}
	if snap.Sequence != 3 {
		t.Errorf("Sequence = %d, want 3", snap.Sequence)
	}

	if err := events.AppendRewardEvent(ctx, RewardEventData{Kind: RewardXP, Amount: 7}); err != nil {
		t.Fatal(err)
	}
	xp, _, err := events.RewardTotals(ctx, snap.Sequence)
	if err != nil {
		t.Fatal(err)
	}
	if xp != 7 {
		t.Errorf("xp after snapshot = %d, want 7", xp)
	}
	owned, err := events.OwnedItems(ctx, snap.Sequence)
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != 0 {
		t.Errorf("owned after snapshot = %v, want none", owned)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		repo.Save(ctx, &Snapshot{Sequence: int64(i), Timestamp: base.Add(time.Duration(i) * time.Second), Data: SnapshotData{Version: i}})
	}
	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	latest, _ := repo.Latest(ctx)
	if latest.Data.Version != 4 {
		t.Errorf("latest version = %d, want 4", latest.Data.Version)
	}

	// Pruning with a larger window is a no-op.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("Prune: %v", err)
	}
}
