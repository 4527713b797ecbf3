package vault

import (
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/session"
)

// MaxConquestItems caps the daily conquer queue.
const MaxConquestItems = 10

var textDistractors = []string{"干扰选项 A", "干扰选项 B", "干扰选项 C"}

// Conquest is one daily conquer run over pending mistake items. Correct
// answers ask the host to auto-advance; misses wait for a manual Next.
type Conquest struct {
	flow    *session.Flow
	sources map[string]Item
}

// AnswerResult reports what happened to a conquer answer.
type AnswerResult struct {
	session.Outcome

	// AutoAdvance is set for a fresh correct answer.
	AutoAdvance bool
}

// NewConquest queues the first MaxConquestItems pending items as
// single-choice questions with options shuffled by rng.
func NewConquest(items []Item, rng *rand.Rand) *Conquest {
	var queue []quiz.Item
	sources := make(map[string]Item)
	for _, it := range items {
		if !it.Pending() {
			continue
		}
		if len(queue) == MaxConquestItems {
			break
		}
		queue = append(queue, quiz.Item{
			ID:          it.ID,
			Kind:        quiz.SingleChoice,
			Tag:         it.Topic,
			Prompt:      it.Question,
			Options:     BuildOptions(it.CorrectAnswer, rng),
			Correct:     quiz.Single(it.CorrectAnswer),
			Explanation: it.Analysis,
		})
		sources[it.ID] = it
	}
	return &Conquest{
		flow:    session.NewFlow(queue, session.DailyConquerXP),
		sources: sources,
	}
}

// BuildOptions returns four shuffled options containing answer. Numeric
// answers get nearby numeric distractors; anything else gets placeholders.
func BuildOptions(answer string, rng *rand.Rand) []string {
	opts := []string{answer}
	if base, err := strconv.ParseFloat(answer, 64); err == nil {
		candidates := []float64{base - 1, base + 2, math.Round(base * 1.5), base + 1, base - 2, base + 3}
		for _, c := range candidates {
			if len(opts) == 4 {
				break
			}
			s := strconv.FormatFloat(c, 'f', -1, 64)
			if !slices.Contains(opts, s) {
				opts = append(opts, s)
			}
		}
	} else {
		opts = append(opts, textDistractors...)
	}
	if rng != nil {
		rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	}
	return opts
}

// Flow exposes the underlying flow.
func (c *Conquest) Flow() *session.Flow { return c.flow }

// Len returns the queue length.
func (c *Conquest) Len() int { return c.flow.Len() }

// Stage returns briefing, active (battle) or debrief.
func (c *Conquest) Stage() session.Stage { return c.flow.Stage() }

// Start leaves the briefing. It returns false when nothing is pending.
func (c *Conquest) Start() bool { return c.flow.Start() }

// Abort opts out from the briefing.
func (c *Conquest) Abort() bool { return c.flow.Abort() }

// Current returns the question on screen and the mistake it came from.
func (c *Conquest) Current() (quiz.Item, Item, error) {
	q, err := c.flow.Current()
	if err != nil {
		return quiz.Item{}, Item{}, err
	}
	return q, c.sources[q.ID], nil
}

// Hint returns the analysis for the current question.
func (c *Conquest) Hint() string {
	_, src, err := c.Current()
	if err != nil {
		return ""
	}
	return src.Analysis
}

// Answered reports whether the current question already has an answer.
func (c *Conquest) Answered() bool {
	q, err := c.flow.Current()
	if err != nil {
		return false
	}
	_, ok := c.flow.Response(q.ID)
	return ok
}

// Answer submits option for the current question. Only the first answer
// per question counts.
func (c *Conquest) Answer(option string) AnswerResult {
	out, served := c.flow.Answer(quiz.Single(option))
	if !served {
		return AnswerResult{}
	}
	return AnswerResult{Outcome: out, AutoAdvance: out.Correct && !out.Duplicate}
}

// Next moves on once the current question is answered. It returns true
// when the run is over and the result can be claimed.
func (c *Conquest) Next() bool {
	if !c.Answered() {
		return false
	}
	return c.flow.Next()
}

// Combo returns the live streak.
func (c *Conquest) Combo() int { return c.flow.Score().Combo }

// MaxCombo returns the best streak so far.
func (c *Conquest) MaxCombo() int { return c.flow.Score().MaxCombo }

// Claim returns the result of a finished run. The host commits
// MasteredIDs to the vault and credits XPEarned.
func (c *Conquest) Claim() (session.Result, bool) {
	return c.flow.Result()
}
