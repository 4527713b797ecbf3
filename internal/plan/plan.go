// Package plan holds the learner's daily task list and headline stats.
package plan

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/lumi/internal/subject"
)

// ErrTaskNotFound is returned when a task ID is not in the plan.
var ErrTaskNotFound = errors.New("task not found")

// Task is one entry in a day plan.
type Task struct {
	ID              string          `yaml:"id" json:"id"`
	Title           string          `yaml:"title" json:"title"`
	Subject         subject.Subject `yaml:"subject" json:"subject"`
	DurationMinutes int             `yaml:"duration_minutes" json:"duration_minutes"`
	Completed       bool            `yaml:"completed" json:"completed"`
	Rationale       string          `yaml:"rationale" json:"rationale,omitempty"`
}

// DayPlan is the ordered task list suggested for today.
type DayPlan struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Tasks       []Task `yaml:"tasks" json:"tasks"`
	TotalXP     int    `yaml:"total_xp" json:"total_xp"`
}

// Clone returns a deep copy of the plan.
func (p DayPlan) Clone() DayPlan {
	p.Tasks = slices.Clone(p.Tasks)
	return p
}

// Filter selects tasks by completion.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterPending Filter = "pending"
	FilterDone    Filter = "done"
)

// ParseFilter maps a flag value to a Filter. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterDone:
		return f, nil
	}
	return "", fmt.Errorf("unknown task filter %q", s)
}

// Board is a day plan being worked through. Tasks are only ever toggled,
// never removed.
type Board struct {
	plan DayPlan
}

// NewBoard copies p into a new board.
func NewBoard(p DayPlan) *Board {
	return &Board{plan: p.Clone()}
}

// Plan returns a copy of the underlying plan.
func (b *Board) Plan() DayPlan { return b.plan.Clone() }

// Toggle flips a task's completion and returns the new value.
func (b *Board) Toggle(id string) (bool, error) {
	i := b.index(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	b.plan.Tasks[i].Completed = !b.plan.Tasks[i].Completed
	return b.plan.Tasks[i].Completed, nil
}

// Task returns the task with id.
func (b *Board) Task(id string) (Task, error) {
	i := b.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return b.plan.Tasks[i], nil
}

func (b *Board) index(id string) int {
	return slices.IndexFunc(b.plan.Tasks, func(t Task) bool { return t.ID == id })
}

// Filter returns the tasks matching f in plan order.
func (b *Board) Filter(f Filter) []Task {
	var out []Task
	for _, t := range b.plan.Tasks {
		switch {
		case f == FilterPending && t.Completed:
		case f == FilterDone && !t.Completed:
		default:
			out = append(out, t)
		}
	}
	return out
}

// BySubject returns the tasks for s in plan order.
func (b *Board) BySubject(s subject.Subject) []Task {
	var out []Task
	for _, t := range b.plan.Tasks {
		if t.Subject == s {
			out = append(out, t)
		}
	}
	return out
}

// Completed returns the IDs of completed tasks.
func (b *Board) Completed() []string {
	var ids []string
	for _, t := range b.Filter(FilterDone) {
		ids = append(ids, t.ID)
	}
	return ids
}

// Restore marks exactly the given task IDs as completed. Unknown IDs are
// ignored.
func (b *Board) Restore(completed []string) {
	for i := range b.plan.Tasks {
		b.plan.Tasks[i].Completed = slices.Contains(completed, b.plan.Tasks[i].ID)
	}
}

// Progress is the completion summary of a board.
type Progress struct {
	Done         int
	Total        int
	MinutesDone  int
	MinutesTotal int
}

// Percent returns the completed share of tasks, 0-100.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Done * 100 / p.Total
}

// Progress computes the board's completion summary.
func (b *Board) Progress() Progress {
	var p Progress
	for _, t := range b.plan.Tasks {
		p.Total++
		p.MinutesTotal += t.DurationMinutes
		if t.Completed {
			p.Done++
			p.MinutesDone += t.DurationMinutes
		}
	}
	return p
}
