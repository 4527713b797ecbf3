// Package content serves the learning material the app runs on: the daily
// plan, subject maps, question banks, lessons, the mistake vault and the
// growth profile.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

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

//go:embed packs/default.yaml
var defaultPack []byte

// SupportedMajor is the pack schema major version this build reads.
const SupportedMajor = "v1"

// ErrIncompatiblePack is returned for packs with a missing, malformed or
// unsupported version.
var ErrIncompatiblePack = errors.New("incompatible content pack")

// defaultVariant keys the variant served for mistakes without their own.
const defaultVariant = "default"

// Profile is the learner's growth profile.
type Profile struct {
	Name         string                `yaml:"name" json:"name"`
	Level        int                   `yaml:"level" json:"level"`
	LevelXP      int                   `yaml:"level_xp" json:"level_xp"`
	Coins        int                   `yaml:"coins" json:"coins"`
	Abilities    map[string]int        `yaml:"abilities" json:"abilities"`
	Achievements []rewards.Achievement `yaml:"achievements" json:"achievements"`
	Roster       rewards.Roster        `yaml:"roster" json:"-"`
}

// Wallet returns the profile's starting balance.
func (p Profile) Wallet() rewards.Wallet {
	return rewards.Wallet{Level: p.Level, LevelXP: p.LevelXP, Coins: p.Coins}
}

// Pack is a decoded content pack.
type Pack struct {
	Version    string                          `yaml:"version"`
	Name       string                          `yaml:"name"`
	Plan       plan.DayPlan                    `yaml:"plan"`
	Stats      plan.UserStats                  `yaml:"stats"`
	Maps       []skillmap.Map                  `yaml:"maps"`
	Grades     []string                        `yaml:"grades"`
	Textbooks  []string                        `yaml:"textbooks"`
	Vault      []vault.Group                   `yaml:"vault"`
	Variants   map[string]quiz.Item            `yaml:"variants"`
	Quizzes    map[subject.Subject][]quiz.Item `yaml:"quizzes"`
	Lessons    []lesson.Lesson                 `yaml:"lessons"`
	Assessment AssessmentPack                  `yaml:"assessment"`
	Profile    Profile                         `yaml:"profile"`
	Store      rewards.Catalog                 `yaml:"store"`
	Chat       []companion.Message             `yaml:"chat"`
}

// AssessmentPack holds the assessment stages and the canned report.
type AssessmentPack struct {
	Stages []assessment.Stage `yaml:"stages"`
	Report assessment.Report  `yaml:"report"`
}

// DefaultPack decodes the pack built into the binary.
func DefaultPack() (*Pack, error) {
	return ParsePack(defaultPack)
}

// LoadPackFile reads and decodes a pack from path.
func LoadPackFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}
	return ParsePack(data)
}

// ParsePack decodes and validates a YAML pack.
func ParsePack(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode content pack: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the version and the structural rules of every section.
func (p *Pack) Validate() error {
	if !semver.IsValid(p.Version) {
		return fmt.Errorf("%w: version %q", ErrIncompatiblePack, p.Version)
	}
	if semver.Major(p.Version) != SupportedMajor {
		return fmt.Errorf("%w: version %s, want %s.x", ErrIncompatiblePack, p.Version, SupportedMajor)
	}

	var errs []error
	tasks := make(map[string]bool, len(p.Plan.Tasks))
	for _, t := range p.Plan.Tasks {
		if !t.Subject.Valid() {
			errs = append(errs, fmt.Errorf("plan task %s: %w: %q", t.ID, subject.ErrUnknown, t.Subject))
		}
		if tasks[t.ID] {
			errs = append(errs, fmt.Errorf("plan task: %w: %s", quiz.ErrDuplicateID, t.ID))
		}
		tasks[t.ID] = true
	}
	for _, m := range p.Maps {
		if err := m.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("map %s: %w", m.Subject, err))
		}
	}
	for subj, items := range p.Quizzes {
		if !subj.Valid() {
			errs = append(errs, fmt.Errorf("quiz bank: %w: %q", subject.ErrUnknown, subj))
		}
		if err := quiz.ValidateItems(items); err != nil {
			errs = append(errs, fmt.Errorf("quiz %s: %w", subj, err))
		}
	}
	for key, it := range p.Variants {
		if it.Kind != quiz.SingleChoice {
			errs = append(errs, fmt.Errorf("variant %s: must be single choice", key))
			continue
		}
		it.ID = key
		if err := it.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("variant %s: %w", key, err))
		}
	}
	for _, st := range p.Assessment.Stages {
		if err := st.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	mistakes := make(map[string]bool)
	for _, g := range p.Vault {
		for _, it := range g.Items {
			if !it.Subject.Valid() {
				errs = append(errs, fmt.Errorf("mistake %s: %w: %q", it.ID, subject.ErrUnknown, it.Subject))
			}
			if mistakes[it.ID] {
				errs = append(errs, fmt.Errorf("mistake: %w: %s", quiz.ErrDuplicateID, it.ID))
			}
			mistakes[it.ID] = true
		}
	}
	return errors.Join(errs...)
}
