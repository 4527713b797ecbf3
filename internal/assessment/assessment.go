package assessment

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/session"
)

// ReportSource produces the final report. content.Provider satisfies it.
type ReportSource interface {
	AssessmentResult(ctx context.Context) (Report, error)
}

// Outcome is everything the final screen shows.
type Outcome struct {
	Report
	Academic    session.Result
	Preferences []string
}

// StepResult describes an answered step.
type StepResult struct {
	session.Outcome

	// Feedback is the companion's reaction for the step, if any.
	Feedback string
}

// Assessment walks the learner through launch, the three stages and the
// final report. Each stage runs on its own flow; a summary card sits
// between a stage's last step and the next phase.
type Assessment struct {
	phases      *session.Sequencer[Phase]
	stages      map[Phase]Stage
	flow        *session.Flow
	showSummary bool
	results     map[Phase]session.Result
	prefs       []string
	onComplete  func(Phase, session.Result)
}

// New builds an assessment from stage definitions. Every stage phase must
// be present exactly once.
func New(stages []Stage) (*Assessment, error) {
	m := make(map[Phase]Stage, len(stages))
	for _, s := range stages {
		if !slices.Contains(StagePhases, s.Phase) {
			return nil, fmt.Errorf("unexpected stage phase %q", s.Phase)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		m[s.Phase] = s
	}
	for _, p := range StagePhases {
		if _, ok := m[p]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingStage, p)
		}
	}
	return &Assessment{
		phases:  session.NewSequencer(Phases...),
		stages:  m,
		results: make(map[Phase]session.Result),
	}, nil
}

// OnPhaseChange registers a callback for phase transitions.
func (a *Assessment) OnPhaseChange(fn func(from, to Phase)) {
	a.phases.OnChange(fn)
}

// OnStageComplete registers a callback fired when a stage's last step is
// done, before its summary is shown.
func (a *Assessment) OnStageComplete(fn func(Phase, session.Result)) {
	a.onComplete = fn
}

// Phase returns the current phase.
func (a *Assessment) Phase() Phase { return a.phases.Current() }

// Stage returns the definition of the current stage.
func (a *Assessment) Stage() (Stage, bool) {
	s, ok := a.stages[a.Phase()]
	return s, ok
}

// StageIndex returns the position of the current stage among the three,
// or -1 outside the stages.
func (a *Assessment) StageIndex() int {
	return slices.Index(StagePhases, a.Phase())
}

// Step returns the current step number (0-based) and the stage length.
func (a *Assessment) Step() (int, int) {
	if a.flow == nil {
		return 0, 0
	}
	return a.flow.Index(), a.flow.Len()
}

// Start leaves the launch screen.
func (a *Assessment) Start() bool {
	if a.Phase() != PhaseLaunch {
		return false
	}
	a.phases.Advance()
	a.enterStage()
	return true
}

func (a *Assessment) enterStage() {
	s, ok := a.stages[a.Phase()]
	if !ok {
		a.flow = nil
		return
	}
	a.flow = session.NewFlow(s.Steps, session.NoXP)
	a.flow.Start()
}

// Current returns the step on screen.
func (a *Assessment) Current() (quiz.Item, error) {
	if a.flow == nil || a.showSummary {
		return quiz.Item{}, session.ErrEmpty
	}
	return a.flow.Current()
}

// Answer records option for the current step. Only the first answer per
// step counts. The bool is false when no step is on screen.
func (a *Assessment) Answer(option string) (StepResult, bool) {
	item, err := a.Current()
	if err != nil {
		return StepResult{}, false
	}
	out, ok := a.flow.Answer(quiz.Single(option))
	if !ok {
		return StepResult{}, false
	}
	if a.Phase() == PhaseStyle && !out.Duplicate {
		a.prefs = append(a.prefs, option)
	}
	return StepResult{Outcome: out, Feedback: item.Feedback}, true
}

// Next moves past an answered step. It returns true when that was the
// stage's last step and the summary is now showing.
func (a *Assessment) Next() bool {
	item, err := a.Current()
	if err != nil {
		return false
	}
	if _, answered := a.flow.Response(item.ID); !answered {
		return false
	}
	if !a.flow.Next() {
		return false
	}
	res, _ := a.flow.Result()
	a.results[a.Phase()] = res
	a.showSummary = true
	if a.onComplete != nil {
		a.onComplete(a.Phase(), res)
	}
	return true
}

// Summary returns the card for the stage just completed.
func (a *Assessment) Summary() (Summary, bool) {
	if !a.showSummary {
		return Summary{}, false
	}
	return a.stages[a.Phase()].Summary, true
}

// Continue dismisses the summary and moves to the next phase. It is a
// no-op outside a summary, so the final phase cannot be advanced.
func (a *Assessment) Continue() bool {
	if !a.showSummary {
		return false
	}
	a.showSummary = false
	a.phases.Advance()
	a.enterStage()
	return true
}

// Finished reports whether the final phase has been reached.
func (a *Assessment) Finished() bool { return a.Phase() == PhaseFinal }

// StageResult returns the recorded result of a completed stage.
func (a *Assessment) StageResult(p Phase) (session.Result, bool) {
	r, ok := a.results[p]
	return r, ok
}

// Preferences returns the style choices in the order made.
func (a *Assessment) Preferences() []string {
	return slices.Clone(a.prefs)
}

// Retake returns to the launch screen with every score and preference
// cleared.
func (a *Assessment) Retake() {
	a.phases.Reset()
	a.flow = nil
	a.showSummary = false
	a.results = make(map[Phase]session.Result)
	a.prefs = nil
}

// Result fetches the final report and attaches the academic score and the
// style preferences.
func (a *Assessment) Result(ctx context.Context, src ReportSource) (Outcome, error) {
	if !a.Finished() {
		return Outcome{}, ErrNotFinished
	}
	rep, err := src.AssessmentResult(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("load assessment report: %w", err)
	}
	return Outcome{
		Report:      rep,
		Academic:    a.results[PhaseAcademic],
		Preferences: a.Preferences(),
	}, nil
}
