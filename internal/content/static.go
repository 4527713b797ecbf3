package content

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lumi/internal/assessment"
	"github.com/abhisek/lumi/internal/companion"
	"github.com/abhisek/lumi/internal/lesson"
	"github.com/abhisek/lumi/internal/plan"
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/rewards"
	"github.com/abhisek/lumi/internal/skillmap"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/vault"
)

// Static serves a decoded pack. Every call returns a deep copy.
type Static struct {
	pack    *Pack
	latency time.Duration
}

// StaticOption configures a Static provider.
type StaticOption func(*Static)

// WithLatency delays every call by d, emulating a remote backend.
func WithLatency(d time.Duration) StaticOption {
	return func(s *Static) { s.latency = d }
}

// NewStatic serves pack.
func NewStatic(pack *Pack, opts ...StaticOption) *Static {
	s := &Static{pack: pack}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewDefault serves the built-in pack.
func NewDefault(opts ...StaticOption) (*Static, error) {
	p, err := DefaultPack()
	if err != nil {
		return nil, err
	}
	return NewStatic(p, opts...), nil
}

// Version returns the pack version.
func (s *Static) Version() string { return s.pack.Version }

// Grades lists the selectable grades.
func (s *Static) Grades() []string { return slices.Clone(s.pack.Grades) }

// Textbooks lists the selectable textbook editions.
func (s *Static) Textbooks() []string { return slices.Clone(s.pack.Textbooks) }

func (s *Static) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Static) DailyPlan(ctx context.Context) (plan.DayPlan, error) {
	if err := s.wait(ctx); err != nil {
		return plan.DayPlan{}, err
	}
	return s.pack.Plan.Clone(), nil
}

func (s *Static) UserStats(ctx context.Context) (plan.UserStats, error) {
	if err := s.wait(ctx); err != nil {
		return plan.UserStats{}, err
	}
	return s.pack.Stats, nil
}

func (s *Static) SubjectMap(ctx context.Context, subj subject.Subject) (skillmap.Map, error) {
	if err := s.wait(ctx); err != nil {
		return skillmap.Map{}, err
	}
	for _, m := range s.pack.Maps {
		if m.Subject == subj {
			return m.Clone(), nil
		}
	}
	return skillmap.Map{}, fmt.Errorf("%w: map %q", ErrUnknownSubject, subj)
}

func (s *Static) MistakeVault(ctx context.Context) ([]vault.Group, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return vault.New(s.pack.Vault).Groups(), nil
}

func (s *Static) Variant(ctx context.Context, mistakeID string) (quiz.Item, error) {
	if err := s.wait(ctx); err != nil {
		return quiz.Item{}, err
	}
	if _, err := vault.New(s.pack.Vault).Find(mistakeID); err != nil {
		return quiz.Item{}, fmt.Errorf("%w: %q", ErrUnknownMistake, mistakeID)
	}
	it, ok := s.pack.Variants[mistakeID]
	if !ok {
		it, ok = s.pack.Variants[defaultVariant]
	}
	if !ok {
		return quiz.Item{}, fmt.Errorf("no variant for %q", mistakeID)
	}
	it = it.Clone()
	it.ID = "variant-" + uuid.NewString()
	return it, nil
}

func (s *Static) QuizBank(ctx context.Context, subj subject.Subject) ([]quiz.Item, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	items, ok := s.pack.Quizzes[subj]
	if !ok {
		return nil, fmt.Errorf("%w: quiz %q", ErrUnknownSubject, subj)
	}
	return quiz.CloneItems(items), nil
}

func (s *Static) Lesson(ctx context.Context, subj subject.Subject) (lesson.Lesson, error) {
	if err := s.wait(ctx); err != nil {
		return lesson.Lesson{}, err
	}
	for _, l := range s.pack.Lessons {
		if l.Subject == subj {
			return l.Clone(), nil
		}
	}
	return lesson.Lesson{}, fmt.Errorf("%w: lesson %q", ErrUnknownSubject, subj)
}

func (s *Static) AssessmentStages(ctx context.Context) ([]assessment.Stage, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return assessment.CloneStages(s.pack.Assessment.Stages), nil
}

func (s *Static) AssessmentResult(ctx context.Context) (assessment.Report, error) {
	if err := s.wait(ctx); err != nil {
		return assessment.Report{}, err
	}
	r := s.pack.Assessment.Report
	r.PersonaTags = slices.Clone(r.PersonaTags)
	r.Radar = slices.Clone(r.Radar)
	return r, nil
}

func (s *Static) Profile(ctx context.Context) (Profile, error) {
	if err := s.wait(ctx); err != nil {
		return Profile{}, err
	}
	p := s.pack.Profile
	p.Abilities = maps.Clone(p.Abilities)
	p.Achievements = slices.Clone(p.Achievements)
	p.Roster = rewards.Roster{
		Names:   slices.Clone(p.Roster.Names),
		Avatars: slices.Clone(p.Roster.Avatars),
		Me:      p.Roster.Me,
	}
	return p, nil
}

func (s *Static) StoreCatalog(ctx context.Context) (rewards.Catalog, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.pack.Store), nil
}

func (s *Static) ChatHistory(ctx context.Context) ([]companion.Message, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := slices.Clone(s.pack.Chat)
	for i := range out {
		if out[i].Card != nil {
			c := *out[i].Card
			out[i].Card = &c
		}
	}
	return out, nil
}
