// Package session implements the linear phase flow shared by quizzes,
// assessments and daily conquer runs: a phase sequencer, an item cursor,
// a scorer and the result aggregator.
package session

// Sequencer walks a fixed, ordered list of phases. It never loops: advancing
// from the last phase is a no-op and the host decides what a terminal phase
// means.
type Sequencer[P comparable] struct {
	phases   []P
	index    int
	onChange []func(from, to P)
}

// NewSequencer creates a sequencer positioned on the first phase.
// Phase lists are static, so an empty list is a programming error.
func NewSequencer[P comparable](phases ...P) *Sequencer[P] {
	if len(phases) == 0 {
		panic("session: sequencer needs at least one phase")
	}
	ps := make([]P, len(phases))
	copy(ps, phases)
	return &Sequencer[P]{phases: ps}
}

// OnChange registers a callback fired after every actual phase change.
func (s *Sequencer[P]) OnChange(fn func(from, to P)) {
	s.onChange = append(s.onChange, fn)
}

// Current returns the active phase.
func (s *Sequencer[P]) Current() P {
	return s.phases[s.index]
}

// Index returns the position of the active phase.
func (s *Sequencer[P]) Index() int {
	return s.index
}

// Phases returns a copy of the phase list.
func (s *Sequencer[P]) Phases() []P {
	out := make([]P, len(s.phases))
	copy(out, s.phases)
	return out
}

// IsLast reports whether the active phase is the final one.
func (s *Sequencer[P]) IsLast() bool {
	return s.index == len(s.phases)-1
}

// Advance moves to the next phase. It returns false without side effects
// when already on the last phase.
func (s *Sequencer[P]) Advance() bool {
	if s.IsLast() {
		return false
	}
	s.moveTo(s.index + 1)
	return true
}

// Reset returns to the first phase.
func (s *Sequencer[P]) Reset() {
	if s.index == 0 {
		return
	}
	s.moveTo(0)
}

func (s *Sequencer[P]) moveTo(i int) {
	from := s.phases[s.index]
	s.index = i
	to := s.phases[s.index]
	for _, fn := range s.onChange {
		fn(from, to)
	}
}
