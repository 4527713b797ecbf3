package content

import (
	"context"
	"errors"

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

var (
	// ErrUnknownSubject is returned when a pack has nothing for a subject.
	ErrUnknownSubject = errors.New("no content for subject")

	// ErrUnknownMistake is returned by Variant for an ID not in the vault.
	ErrUnknownMistake = errors.New("unknown mistake item")
)

// Provider supplies learning content. Results are owned by the caller.
type Provider interface {
	DailyPlan(ctx context.Context) (plan.DayPlan, error)
	UserStats(ctx context.Context) (plan.UserStats, error)
	SubjectMap(ctx context.Context, subj subject.Subject) (skillmap.Map, error)
	MistakeVault(ctx context.Context) ([]vault.Group, error)

	// Variant returns a fresh single-choice practice question built from
	// the mistake with mistakeID.
	Variant(ctx context.Context, mistakeID string) (quiz.Item, error)

	QuizBank(ctx context.Context, subj subject.Subject) ([]quiz.Item, error)
	Lesson(ctx context.Context, subj subject.Subject) (lesson.Lesson, error)
	AssessmentStages(ctx context.Context) ([]assessment.Stage, error)
	AssessmentResult(ctx context.Context) (assessment.Report, error)
	Profile(ctx context.Context) (Profile, error)
	StoreCatalog(ctx context.Context) (rewards.Catalog, error)
	ChatHistory(ctx context.Context) ([]companion.Message, error)
}

var _ assessment.ReportSource = Provider(nil)
