// Package assessment runs the onboarding assessment: a launch screen,
// three timed stages with summaries in between, and a final report.
package assessment

import (
	"errors"
	"fmt"

	"github.com/abhisek/lumi/internal/quiz"
)

// Phase is a step of the assessment. The order is fixed.
type Phase string

const (
	PhaseLaunch    Phase = "launch"
	PhaseCognitive Phase = "cognitive"
	PhaseAcademic  Phase = "academic"
	PhaseStyle     Phase = "style"
	PhaseFinal     Phase = "final_result"
)

// Phases lists every phase in order.
var Phases = []Phase{PhaseLaunch, PhaseCognitive, PhaseAcademic, PhaseStyle, PhaseFinal}

// StagePhases are the phases that serve steps.
var StagePhases = []Phase{PhaseCognitive, PhaseAcademic, PhaseStyle}

// Summary is the card shown after a stage's last step.
type Summary struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Stage defines the steps of one middle phase.
type Stage struct {
	Phase   Phase       `yaml:"phase" json:"phase"`
	Label   string      `yaml:"label" json:"label"`
	Scored  bool        `yaml:"scored" json:"scored"`
	Steps   []quiz.Item `yaml:"steps" json:"steps"`
	Summary Summary     `yaml:"summary" json:"summary"`
}

var (
	ErrMissingStage = errors.New("assessment stage missing")
	ErrNotFinished  = errors.New("assessment not finished")
)

// CloneStages deep-copies stage definitions.
func CloneStages(stages []Stage) []Stage {
	out := make([]Stage, len(stages))
	for i, st := range stages {
		st.Steps = quiz.CloneItems(st.Steps)
		out[i] = st
	}
	return out
}

// Validate checks that a stage has steps and, when scored, that every step
// carries a reference answer.
func (s Stage) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("stage %s: no steps", s.Phase)
	}
	if err := quiz.ValidateItems(s.Steps); err != nil {
		return fmt.Errorf("stage %s: %w", s.Phase, err)
	}
	for _, it := range s.Steps {
		if s.Scored && !it.Scored() {
			return fmt.Errorf("stage %s: step %s has no answer", s.Phase, it.ID)
		}
	}
	return nil
}

// Dimension is one axis of the ability radar.
type Dimension struct {
	Subject  string `yaml:"subject" json:"subject"`
	Score    int    `yaml:"score" json:"score"`
	FullMark int    `yaml:"full_mark" json:"full_mark"`
	Analysis string `yaml:"analysis" json:"analysis"`
}

// Efficiency is the plan trimming the assessment unlocked.
type Efficiency struct {
	RemovedPercent int    `yaml:"removed_percent" json:"removed_percent"`
	SavedTime      string `yaml:"saved_time" json:"saved_time"`
}

// Report is the analysed profile produced after the final stage.
type Report struct {
	PersonaTags []string    `yaml:"persona_tags" json:"persona_tags"`
	Radar       []Dimension `yaml:"radar" json:"radar"`
	Efficiency  Efficiency  `yaml:"efficiency" json:"efficiency"`
}
