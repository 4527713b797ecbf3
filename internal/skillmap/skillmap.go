// Package skillmap provides the per-subject level map: a path of levels,
// reward chests and a boss that unlock one after another.
package skillmap

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/lumi/internal/subject"
)

// NodeType distinguishes map nodes.
type NodeType string

const (
	NodeLevel NodeType = "level"
	NodeChest NodeType = "chest"
	NodeBoss  NodeType = "boss"
)

// NodeStatus is the unlock state of a node.
type NodeStatus string

const (
	StatusLocked    NodeStatus = "locked"
	StatusCurrent   NodeStatus = "current"
	StatusCompleted NodeStatus = "completed"
)

// MaxStars is the best rating for a level.
const MaxStars = 3

var (
	ErrNodeNotFound = errors.New("map node not found")
	ErrNodeLocked   = errors.New("map node is locked")
)

// Node is one stop on the map.
type Node struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Level       int        `yaml:"level" json:"level"`
	Type        NodeType   `yaml:"type" json:"type"`
	Status      NodeStatus `yaml:"status" json:"status"`
	Stars       int        `yaml:"stars" json:"stars"`
	Description string     `yaml:"description" json:"description,omitempty"`
	Duration    string     `yaml:"duration" json:"duration,omitempty"`
	RewardCoins int        `yaml:"reward_coins" json:"reward_coins,omitempty"`
	Branch      bool       `yaml:"branch" json:"branch,omitempty"`
}

// Chapter is a syllabus entry shown next to the map.
type Chapter struct {
	ID     string     `yaml:"id" json:"id"`
	Title  string     `yaml:"title" json:"title"`
	Status NodeStatus `yaml:"status" json:"status"`
}

// Map is the level map of one subject.
type Map struct {
	Subject  subject.Subject `yaml:"subject" json:"subject"`
	Grade    string          `yaml:"grade" json:"grade"`
	Textbook string          `yaml:"textbook" json:"textbook"`
	Chapter  string          `yaml:"chapter" json:"chapter"`
	Nodes    []Node          `yaml:"nodes" json:"nodes"`
	Syllabus []Chapter       `yaml:"syllabus" json:"syllabus,omitempty"`
}

// Clone returns a deep copy.
func (m Map) Clone() Map {
	m.Nodes = slices.Clone(m.Nodes)
	m.Syllabus = slices.Clone(m.Syllabus)
	return m
}

// Validate checks the map structure and returns every problem found.
func (m Map) Validate() error {
	var errs []string
	ids := make(map[string]bool, len(m.Nodes))
	current := 0
	for _, n := range m.Nodes {
		if ids[n.ID] {
			errs = append(errs, fmt.Sprintf("duplicate node ID: %q", n.ID))
		}
		ids[n.ID] = true
		switch n.Type {
		case NodeLevel, NodeChest, NodeBoss:
		default:
			errs = append(errs, fmt.Sprintf("node %q: unknown type %q", n.ID, n.Type))
		}
		switch n.Status {
		case StatusCurrent:
			current++
		case StatusLocked, StatusCompleted:
		default:
			errs = append(errs, fmt.Sprintf("node %q: unknown status %q", n.ID, n.Status))
		}
		if n.Stars < 0 || n.Stars > MaxStars {
			errs = append(errs, fmt.Sprintf("node %q: stars must be in [0, %d], got %d", n.ID, MaxStars, n.Stars))
		}
	}
	if current > 1 {
		errs = append(errs, fmt.Sprintf("%d nodes are current, want at most 1", current))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s map validation failed:\n  %s", m.Subject, strings.Join(errs, "\n  "))
	}
	return nil
}

// Progress is the completion summary of a map.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Stars     int `json:"stars"`
	MaxStars  int `json:"max_stars"`
}

// Percent returns completed nodes as a percentage.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// StarsFor rates a level from its quiz accuracy in [0, 1].
func StarsFor(accuracy float64) int {
	switch {
	case accuracy >= 1:
		return 3
	case accuracy >= 0.7:
		return 2
	case accuracy >= 0.4:
		return 1
	}
	return 0
}
