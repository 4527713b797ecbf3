package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lumi/internal/assessment"
	"github.com/abhisek/lumi/internal/llm"
	"github.com/abhisek/lumi/internal/plan"
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/rewards"
	"github.com/abhisek/lumi/internal/skillmap"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/vault"
)

func newStatic(t *testing.T) *Static {
	t.Helper()
	s, err := NewDefault()
	require.NoError(t, err)
	return s
}

func TestDefaultPackLoads(t *testing.T) {
	s := newStatic(t)
	ctx := context.Background()

	p, err := s.DailyPlan(ctx)
	require.NoError(t, err)
	assert.Len(t, p.Tasks, 3)
	assert.Equal(t, 450, p.TotalXP)
	assert.Equal(t, subject.English, p.Tasks[2].Subject)

	stats, err := s.UserStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, stats.StreakDays)

	for _, subj := range subject.All {
		m, err := s.SubjectMap(ctx, subj)
		require.NoError(t, err, subj)
		_, err = skillmap.NewWalker(m)
		require.NoError(t, err, subj)

		items, err := s.QuizBank(ctx, subj)
		require.NoError(t, err, subj)
		assert.Len(t, items, 3, subj)

		l, err := s.Lesson(ctx, subj)
		require.NoError(t, err, subj)
		assert.NotEmpty(t, l.Points, subj)
	}

	stages, err := s.AssessmentStages(ctx)
	require.NoError(t, err)
	_, err = assessment.New(stages)
	require.NoError(t, err)

	cat, err := s.StoreCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, cat, 7)
	skin, ok := cat.Find("neon-skin")
	require.True(t, ok)
	assert.Equal(t, 10, skin.MinLevel)
	assert.Len(t, cat.ByCategory(rewards.CategoryTicket), 3)

	prof, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "李华", prof.Name)
	assert.Equal(t, 3, rewards.UnlockedCount(prof.Achievements))
	assert.Len(t, prof.Roster.Names, 14)
	assert.Equal(t, 850, prof.Wallet().Coins)

	chat, err := s.ChatHistory(ctx)
	require.NoError(t, err)
	require.Len(t, chat, 4)
	require.NotNil(t, chat[3].Card)
}

func TestVaultDates(t *testing.T) {
	groups, err := newStatic(t).MistakeVault(context.Background())
	require.NoError(t, err)
	v := vault.New(groups)
	it, err := v.Find("err1")
	require.NoError(t, err)
	assert.Equal(t, "13", it.CorrectAnswer)
	assert.Equal(t, vault.ErrorCalculation, it.ErrorType)
	assert.True(t, it.Stats.Starred)
	assert.True(t, it.Stats.LastWrongDate.Equal(time.Date(2023, 10, 24, 0, 0, 0, 0, time.UTC)), it.Stats.LastWrongDate)
}

func TestUnknownSubject(t *testing.T) {
	s := newStatic(t)
	_, err := s.QuizBank(context.Background(), subject.Subject("physics"))
	assert.ErrorIs(t, err, ErrUnknownSubject)
	_, err = s.SubjectMap(context.Background(), subject.Subject("physics"))
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestStaticReturnsCopies(t *testing.T) {
	s := newStatic(t)
	ctx := context.Background()

	items, _ := s.QuizBank(ctx, subject.Math)
	items[0].Options[0] = "changed"
	again, _ := s.QuizBank(ctx, subject.Math)
	assert.NotEqual(t, "changed", again[0].Options[0])

	p, _ := s.DailyPlan(ctx)
	p.Tasks[0].Completed = true
	p2, _ := s.DailyPlan(ctx)
	assert.False(t, p2.Tasks[0].Completed)

	prof, _ := s.Profile(ctx)
	prof.Abilities["logic"] = 0
	prof2, _ := s.Profile(ctx)
	assert.Equal(t, 85, prof2.Abilities["logic"])
}

func TestVariant(t *testing.T) {
	s := newStatic(t)
	ctx := context.Background()

	own, err := s.Variant(ctx, "err1")
	require.NoError(t, err)
	assert.True(t, own.Check(quiz.Single("29")))
	assert.True(t, strings.HasPrefix(own.ID, "variant-"))

	shared, err := s.Variant(ctx, "err4")
	require.NoError(t, err)
	assert.True(t, shared.Check(quiz.Single("10 或 2√7")))
	assert.False(t, shared.Check(quiz.Single("10")))

	other, _ := s.Variant(ctx, "err4")
	assert.NotEqual(t, shared.ID, other.ID)

	_, err = s.Variant(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownMistake)
}

func TestLatencyHonoursContext(t *testing.T) {
	p, err := DefaultPack()
	require.NoError(t, err)
	s := NewStatic(p, WithLatency(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.DailyPlan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParsePackVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"v1.0.0", false},
		{"v1.9.3", false},
		{"v2.0.0", true},
		{"1.0.0", true},
		{"", true},
	}
	for _, tt := range tests {
		_, err := ParsePack([]byte("version: " + tt.version + "\n"))
		if tt.wantErr {
			if !errors.Is(err, ErrIncompatiblePack) {
				t.Errorf("ParsePack(%q) err = %v, want ErrIncompatiblePack", tt.version, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePack(%q) unexpected error: %v", tt.version, err)
		}
	}
}

func TestParsePackRejectsBadContent(t *testing.T) {
	data := `
version: v1.0.0
quizzes:
  math:
    - {id: q1, kind: single, prompt: "1+1?", options: ["1", "2"], correct: "3"}
vault:
  - topic: t
    items:
      - {id: x1, subject: physics}
`
	_, err := ParsePack([]byte(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, quiz.ErrAnswerNotInSet)
	assert.ErrorIs(t, err, subject.ErrUnknown)
}

func TestParsePackRejectsDuplicateIDs(t *testing.T) {
	data := `
version: v1.0.0
plan:
  tasks:
    - {id: t1, subject: math}
    - {id: t1, subject: english}
quizzes:
  math:
    - {id: x, kind: text, prompt: "first", correct: "a"}
    - {id: x, kind: text, prompt: "second", correct: "b"}
  english:
    - {id: x, kind: text, prompt: "other bank", correct: "c"}
vault:
  - topic: one
    items:
      - {id: m1, subject: math}
  - topic: two
    items:
      - {id: m1, subject: chinese}
`
	_, err := ParsePack([]byte(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, quiz.ErrDuplicateID)
	msg := err.Error()
	assert.Contains(t, msg, "plan task")
	assert.Contains(t, msg, "quiz math")
	assert.NotContains(t, msg, "quiz english")
	assert.Contains(t, msg, "mistake")
}

func TestLoadDashboard(t *testing.T) {
	d, err := LoadDashboard(context.Background(), newStatic(t))
	require.NoError(t, err)
	assert.Equal(t, "plan-1", d.Plan.ID)
	assert.Equal(t, 600, d.Stats.XPTarget)
	assert.NotEmpty(t, d.Vault)
	assert.Equal(t, 5, d.Profile.Level)
}

// failingProvider fails UserStats and serves everything else from Static.
type failingProvider struct {
	*Static
}

func (failingProvider) UserStats(context.Context) (plan.UserStats, error) {
	return plan.UserStats{}, errors.New("stats down")
}

func TestLoadDashboardError(t *testing.T) {
	_, err := LoadDashboard(context.Background(), failingProvider{newStatic(t)})
	assert.EqualError(t, err, "stats down")
}

func TestGenerativePlan(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"title": "冲刺日",
		"description": "先清错题",
		"tasks": [
			{"title": "韦达定理专练", "subject": "math", "duration_minutes": 25, "rationale": "err1 平方和公式出错"},
			{"title": "古诗默写", "subject": "chinese", "duration_minutes": 10, "rationale": "旧年写成新年"}
		]
	}`)})
	g := NewGenerative(newStatic(t), mock, nil)

	p, err := g.DailyPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "冲刺日", p.Title)
	require.Len(t, p.Tasks, 2)
	assert.Equal(t, "t2", p.Tasks[1].ID)
	assert.Equal(t, subject.Chinese, p.Tasks[1].Subject)
	assert.Equal(t, 450, p.TotalXP)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "daily-plan", mock.Calls[0].Schema.Name)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "一元二次方程")
}

func TestGenerativeFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"title":"x","description":"y","tasks":[{"title":"a","subject":"physics","duration_minutes":10,"rationale":"r"}]}`)},
		llm.MockResponse{Content: json.RawMessage(`{"prompt":"p","options":["1","2","3","4"],"correct":"5","explanation":"e"}`)},
	)
	g := NewGenerative(newStatic(t), mock, nil)
	ctx := context.Background()

	p, err := g.DailyPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "plan-1", p.ID, "unknown subject must fall back")

	v, err := g.Variant(ctx, "err4")
	require.NoError(t, err)
	assert.True(t, v.Check(quiz.Single("10 或 2√7")), "answer outside options must fall back")
}

func TestGenerativeVariant(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"prompt":"两边长为 5 和 12，求第三边。","options":["13","√119","13 或 √119","17"],"correct":"13 或 √119","explanation":"分类讨论"}`,
	)})
	g := NewGenerative(newStatic(t), mock, nil)

	v, err := g.Variant(context.Background(), "err4")
	require.NoError(t, err)
	assert.Equal(t, quiz.SingleChoice, v.Kind)
	assert.True(t, v.Check(quiz.Single("13 或 √119")))
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "5 或 √7")

	_, err = g.Variant(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownMistake)
}
