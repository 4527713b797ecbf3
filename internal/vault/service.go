package vault

import (
	"context"
	"time"

	"github.com/abhisek/lumi/internal/logger"
	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/store"
)

// Service wraps a Vault and records every status transition.
type Service struct {
	Vault *Vault

	eventRepo store.EventRepo
	log       *logger.Logger
	now       func() time.Time
}

// NewService creates a Service. eventRepo and log may be nil.
func NewService(v *Vault, eventRepo store.EventRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{Vault: v, eventRepo: eventRepo, log: log, now: time.Now}
}

// Restore replays persisted statuses onto the vault.
func (s *Service) Restore(ctx context.Context) error {
	if s.eventRepo == nil {
		return nil
	}
	statuses, err := s.eventRepo.MistakeStatuses(ctx)
	if err != nil {
		return err
	}
	for _, t := range s.Vault.Restore(statuses) {
		s.log.Debug("restored mistake status", "item", t.ItemID, "status", t.To)
	}
	return s.restoreStars(ctx)
}

// restoreStars replays star toggles oldest first.
func (s *Service) restoreStars(ctx context.Context) error {
	events, err := s.eventRepo.QueryMistakeEvents(ctx, store.QueryOpts{})
	if err != nil {
		return err
	}
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		switch Trigger(e.Trigger) {
		case TriggerStar:
			_ = s.Vault.SetStar(e.ItemID, true)
		case TriggerUnstar:
			_ = s.Vault.SetStar(e.ItemID, false)
		}
	}
	return nil
}

// ToggleStar flips an item's star and records it.
func (s *Service) ToggleStar(ctx context.Context, id string) (bool, error) {
	starred, err := s.Vault.ToggleStar(id)
	if err != nil {
		return false, err
	}
	it, _ := s.Vault.Find(id)
	trigger := TriggerUnstar
	if starred {
		trigger = TriggerStar
	}
	s.persist(ctx, Transition{ItemID: id, From: it.Status, To: it.Status, Trigger: trigger})
	return starred, nil
}

// Confirm applies a confirmation and records the transition.
func (s *Service) Confirm(ctx context.Context, c Confirmation) (Transition, error) {
	t, err := s.Vault.Confirm(c)
	if err != nil {
		return Transition{}, err
	}
	s.persist(ctx, t)
	return t, nil
}

// Review records a practice attempt and any resulting transition.
func (s *Service) Review(ctx context.Context, id string, correct bool) error {
	t, err := s.Vault.RecordReview(id, correct, s.now())
	if err != nil {
		return err
	}
	if t != nil {
		s.persist(ctx, *t)
	}
	return nil
}

// CommitConquest applies a finished daily conquer result: mastered items
// are committed, the session is recorded and the transitions are returned.
func (s *Service) CommitConquest(ctx context.Context, res session.Result) []Transition {
	ts := s.Vault.CommitMastered(res.MasteredIDs)
	for _, t := range ts {
		s.persist(ctx, t)
	}
	if s.eventRepo != nil {
		err := s.eventRepo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:   res.SessionID,
			StartedAt:   res.StartedAt,
			Mode:        "conquer",
			Correct:     res.Correct,
			Total:       res.Total,
			MaxCombo:    res.MaxCombo,
			XPEarned:    res.XPEarned,
			MasteredIDs: res.MasteredIDs,
		})
		if err != nil {
			s.log.Warn("record conquer session failed", "error", err)
		}
	}
	s.log.Info("daily conquer committed", "mastered", len(ts), "xp", res.XPEarned, "pending", s.Vault.PendingCount())
	return ts
}

func (s *Service) persist(ctx context.Context, t Transition) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendMistakeEvent(ctx, store.MistakeEventData{
		ItemID:     t.ItemID,
		FromStatus: string(t.From),
		ToStatus:   string(t.To),
		Trigger:    string(t.Trigger),
	})
	if err != nil {
		s.log.Warn("record mistake transition failed", "item", t.ItemID, "error", err)
	}
}
