package vault

import (
	"context"
	"testing"

	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/store"
)

// mockEventRepo implements store.EventRepo for vault tests.
type mockEventRepo struct {
	mistakes []store.MistakeEventData
	sessions []store.SessionEventData
	statuses map[string]string
}

func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessions = append(m.sessions, data)
	return nil
}
func (m *mockEventRepo) AppendMistakeEvent(_ context.Context, data store.MistakeEventData) error {
	m.mistakes = append(m.mistakes, data)
	return nil
}
func (m *mockEventRepo) AppendRewardEvent(_ context.Context, _ store.RewardEventData) error {
	return nil
}
func (m *mockEventRepo) QuerySessionEvents(_ context.Context, _ store.QueryOpts) ([]store.SessionEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) QueryMistakeEvents(_ context.Context, _ store.QueryOpts) ([]store.MistakeEventRecord, error) {
	out := make([]store.MistakeEventRecord, 0, len(m.mistakes))
	for i := len(m.mistakes) - 1; i >= 0; i-- {
		out = append(out, store.MistakeEventRecord{MistakeEventData: m.mistakes[i], Sequence: int64(i + 1)})
	}
	return out, nil
}
func (m *mockEventRepo) QueryRewardEvents(_ context.Context, _ store.QueryOpts) ([]store.RewardEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) MistakeStatuses(_ context.Context) (map[string]string, error) {
	return m.statuses, nil
}
func (m *mockEventRepo) RewardTotals(_ context.Context, _ int64) (int, int, error) {
	return 0, 0, nil
}
func (m *mockEventRepo) OwnedItems(_ context.Context, _ int64) ([]string, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsage(_ context.Context) ([]store.LLMUsage, error) {
	return nil, nil
}

func TestServiceConfirmPersists(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewService(New(testGroups()), repo, nil)

	c, _ := svc.Vault.RequestToggle("err1")
	if _, err := svc.Confirm(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	if len(repo.mistakes) != 1 {
		t.Fatalf("mistake events = %d, want 1", len(repo.mistakes))
	}
	got := repo.mistakes[0]
	if got.ItemID != "err1" || got.FromStatus != "new" || got.ToStatus != "mastered" || got.Trigger != "confirm" {
		t.Errorf("event = %+v", got)
	}
}

func TestServiceCommitConquest(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewService(New(testGroups()), repo, nil)

	res := session.Result{SessionID: "run-1", Correct: 2, Total: 3, MaxCombo: 2, XPEarned: 50, MasteredIDs: []string{"err1", "err2"}}
	ts := svc.CommitConquest(context.Background(), res)
	if len(ts) != 2 {
		t.Fatalf("transitions = %d, want 2", len(ts))
	}
	if len(repo.mistakes) != 2 {
		t.Errorf("mistake events = %d, want 2", len(repo.mistakes))
	}
	if len(repo.sessions) != 1 || repo.sessions[0].Mode != "conquer" || repo.sessions[0].XPEarned != 50 || repo.sessions[0].SessionID != "run-1" {
		t.Errorf("sessions = %+v", repo.sessions)
	}
	if svc.Vault.PendingCount() != 1 {
		t.Errorf("PendingCount = %d, want 1", svc.Vault.PendingCount())
	}
}

func TestServiceRestore(t *testing.T) {
	repo := &mockEventRepo{statuses: map[string]string{"err2": "mastered"}}
	svc := NewService(New(testGroups()), repo, nil)
	if err := svc.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	if it, _ := svc.Vault.Find("err2"); it.Status != StatusMastered {
		t.Errorf("err2 = %s, want mastered", it.Status)
	}
	if len(repo.mistakes) != 0 {
		t.Error("restore must not append new events")
	}
}

func TestServiceNilRepo(t *testing.T) {
	svc := NewService(New(testGroups()), nil, nil)
	if err := svc.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Review(context.Background(), "err1", false); err != nil {
		t.Fatal(err)
	}
	svc.CommitConquest(context.Background(), session.Result{MasteredIDs: []string{"err3"}})
	if it, _ := svc.Vault.Find("err3"); it.Status != StatusMastered {
		t.Errorf("err3 = %s, want mastered", it.Status)
	}
}

func TestServiceStarSurvivesRestore(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewService(New(testGroups()), repo, nil)
	ctx := context.Background()

	for _, id := range []string{"err2", "err3", "err3"} {
		if _, err := svc.ToggleStar(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	if len(repo.mistakes) != 3 || repo.mistakes[0].Trigger != "star" || repo.mistakes[2].Trigger != "unstar" {
		t.Fatalf("events = %+v", repo.mistakes)
	}
	if repo.mistakes[0].FromStatus != repo.mistakes[0].ToStatus {
		t.Error("star events must not change status")
	}

	fresh := NewService(New(testGroups()), repo, nil)
	if err := fresh.Restore(ctx); err != nil {
		t.Fatal(err)
	}
	if it, _ := fresh.Vault.Find("err2"); !it.Stats.Starred {
		t.Error("err2 should be starred after restore")
	}
	if it, _ := fresh.Vault.Find("err3"); it.Stats.Starred {
		t.Error("err3 was unstarred last")
	}
}
