package bootstrap

import (
	"context"

	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/store"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/vault"
)

// ConquestClaim is what a finished daily conquer paid out.
type ConquestClaim struct {
	Result      session.Result
	Transitions []vault.Transition
	LevelsUp    int
}

// ClaimConquest commits a finished daily conquer: mastered items move in
// the vault and the XP goes to the wallet and today's stats. It reports
// false while the conquest is not in debrief.
func (d *Deps) ClaimConquest(ctx context.Context, c *vault.Conquest) (ConquestClaim, bool) {
	res, ok := c.Claim()
	if !ok {
		return ConquestClaim{}, false
	}
	claim := ConquestClaim{
		Result:      res,
		Transitions: d.Vault.CommitConquest(ctx, res),
		LevelsUp:    d.Rewards.Credit(ctx, res.XPEarned, 0, "daily conquer"),
	}
	d.Stats.Credit(res.XPEarned, 0)
	return claim, true
}

// RecordQuiz stores a submitted quiz result.
func (d *Deps) RecordQuiz(ctx context.Context, subj subject.Subject, res session.Result) {
	d.recordSession(ctx, store.SessionEventData{
		SessionID: res.SessionID,
		StartedAt: res.StartedAt,
		Mode:      "quiz",
		Subject:   string(subj),
		Correct:   res.Correct,
		Total:     res.Total,
		MaxCombo:  res.MaxCombo,
		XPEarned:  res.XPEarned,
	})
}

// RecordAssessment stores the scored stage of a finished assessment.
func (d *Deps) RecordAssessment(ctx context.Context, res session.Result) {
	d.recordSession(ctx, store.SessionEventData{
		SessionID: res.SessionID,
		StartedAt: res.StartedAt,
		Mode:      "assessment",
		Correct:   res.Correct,
		Total:     res.Total,
		MaxCombo:  res.MaxCombo,
	})
}

func (d *Deps) recordSession(ctx context.Context, data store.SessionEventData) {
	repo := d.EventRepo()
	if repo == nil {
		return
	}
	if err := repo.AppendSessionEvent(ctx, data); err != nil {
		d.Log.Warn("record session failed", "mode", data.Mode, "error", err)
		return
	}
	d.Log.Info("session recorded", "mode", data.Mode, "correct", data.Correct, "total", data.Total)
}

// ToggleTask flips a plan task and persists the plan progress.
func (d *Deps) ToggleTask(ctx context.Context, id string) (bool, error) {
	done, err := d.Board.Toggle(id)
	if err != nil {
		return false, err
	}
	if err := d.SaveSnapshot(ctx); err != nil {
		d.Log.Warn("save snapshot failed", "error", err)
	}
	return done, nil
}
