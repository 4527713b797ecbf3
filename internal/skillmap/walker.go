package skillmap

import (
	"fmt"
	"slices"
)

// Walker tracks the learner's position on a map.
type Walker struct {
	m Map
}

// NewWalker validates m and returns a walker over a copy of it.
func NewWalker(m Map) (*Walker, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Walker{m: m.Clone()}, nil
}

// Map returns a copy of the current state.
func (w *Walker) Map() Map { return w.m.Clone() }

// Node returns the node with id.
func (w *Walker) Node(id string) (Node, error) {
	i := w.index(id)
	if i < 0 {
		return Node{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return w.m.Nodes[i], nil
}

func (w *Walker) index(id string) int {
	return slices.IndexFunc(w.m.Nodes, func(n Node) bool { return n.ID == id })
}

// Current returns the node to play next. The bool is false when every
// node is completed.
func (w *Walker) Current() (Node, bool) {
	i := slices.IndexFunc(w.m.Nodes, func(n Node) bool { return n.Status == StatusCurrent })
	if i < 0 {
		return Node{}, false
	}
	return w.m.Nodes[i], true
}

// Selectable reports whether the learner may open node id.
func (w *Walker) Selectable(id string) bool {
	n, err := w.Node(id)
	return err == nil && n.Status != StatusLocked
}

// Complete records a finished node. Stars are clamped to [0, MaxStars] and
// a replay keeps the best rating. Finishing the current node unlocks the
// next locked node on the main path.
func (w *Walker) Complete(id string, stars int) (Node, error) {
	i := w.index(id)
	if i < 0 {
		return Node{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	n := &w.m.Nodes[i]
	if n.Status == StatusLocked {
		return Node{}, fmt.Errorf("%w: %s", ErrNodeLocked, id)
	}
	stars = min(max(stars, 0), MaxStars)
	if n.Type == NodeChest {
		stars = 0
	}
	n.Stars = max(n.Stars, stars)

	wasCurrent := n.Status == StatusCurrent
	n.Status = StatusCompleted
	if wasCurrent {
		w.unlockAfter(i)
	}
	return *n, nil
}

func (w *Walker) unlockAfter(i int) {
	for j := i + 1; j < len(w.m.Nodes); j++ {
		n := &w.m.Nodes[j]
		if n.Branch || n.Status != StatusLocked {
			continue
		}
		n.Status = StatusCurrent
		return
	}
}

// UnlockAll opens every locked node. The first locked main-path node
// becomes current if nothing is.
func (w *Walker) UnlockAll() {
	_, hasCurrent := w.Current()
	for j := range w.m.Nodes {
		n := &w.m.Nodes[j]
		if n.Status != StatusLocked {
			continue
		}
		if !hasCurrent && !n.Branch {
			n.Status = StatusCurrent
			hasCurrent = true
			continue
		}
		n.Status = StatusCompleted
	}
}

// Progress summarises completion and stars over the level and boss nodes.
func (w *Walker) Progress() Progress {
	var p Progress
	for _, n := range w.m.Nodes {
		p.Total++
		if n.Status == StatusCompleted {
			p.Completed++
		}
		if n.Type != NodeChest {
			p.Stars += n.Stars
			p.MaxStars += MaxStars
		}
	}
	return p
}
