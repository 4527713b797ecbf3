package session

import "github.com/abhisek/lumi/internal/quiz"

// Quiz is a flow with a working answer sheet. Drafts can be changed and
// revisited through the answer grid until the learner moves past the last
// item, which submits the whole sheet in queue order.
type Quiz struct {
	flow   *Flow
	drafts map[string]quiz.Answer
}

// ReviewEntry is one cell of the result grid.
type ReviewEntry struct {
	Index   int
	Item    quiz.Item
	Answer  quiz.Answer
	Correct bool
}

// NewQuiz creates a quiz over items. Quiz XP is not computed from the score.
func NewQuiz(items []quiz.Item) *Quiz {
	return &Quiz{
		flow:   NewFlow(items, NoXP),
		drafts: make(map[string]quiz.Answer),
	}
}

// Flow exposes the underlying flow for stage and result access.
func (q *Quiz) Flow() *Flow { return q.flow }

// Start opts in. It returns false for an empty quiz.
func (q *Quiz) Start() bool { return q.flow.Start() }

// Current returns the item on screen.
func (q *Quiz) Current() (quiz.Item, error) { return q.flow.Current() }

// Choose sets the single-choice answer for the current item.
func (q *Quiz) Choose(option string) {
	q.edit(func(item quiz.Item, _ quiz.Answer) quiz.Answer {
		if item.Kind != quiz.SingleChoice {
			return nil
		}
		return quiz.Single(option)
	})
}

// Toggle flips option in the multi-choice selection for the current item.
func (q *Quiz) Toggle(option string) {
	q.edit(func(item quiz.Item, prev quiz.Answer) quiz.Answer {
		if item.Kind != quiz.MultiChoice {
			return nil
		}
		return prev.Toggle(option)
	})
}

// Type sets the free-text answer for the current item.
func (q *Quiz) Type(text string) {
	q.edit(func(item quiz.Item, _ quiz.Answer) quiz.Answer {
		if item.Kind != quiz.FreeText {
			return nil
		}
		if text == "" {
			return quiz.Answer{}
		}
		return quiz.Single(text)
	})
}

func (q *Quiz) edit(fn func(item quiz.Item, prev quiz.Answer) quiz.Answer) {
	if q.flow.Stage() != StageActive {
		return
	}
	item, err := q.flow.Current()
	if err != nil {
		return
	}
	next := fn(item, q.drafts[item.ID])
	if next == nil {
		return
	}
	q.drafts[item.ID] = next
}

// Draft returns the working answer for itemID.
func (q *Quiz) Draft(itemID string) quiz.Answer {
	return q.drafts[itemID]
}

// AnsweredCount returns how many items have a non-empty draft.
func (q *Quiz) AnsweredCount() int {
	n := 0
	for _, a := range q.drafts {
		if !a.Empty() {
			n++
		}
	}
	return n
}

// Seek jumps to item i from the answer grid.
func (q *Quiz) Seek(i int) int {
	return q.flow.Seek(i)
}

// Next moves to the following item. On the last item it submits the sheet
// and returns true once the result is ready.
func (q *Quiz) Next() bool {
	if q.flow.Stage() != StageActive {
		return false
	}
	if q.flow.Index() < q.flow.Len()-1 {
		q.flow.Next()
		return false
	}
	return q.submit()
}

func (q *Quiz) submit() bool {
	for i := 0; i < q.flow.Len(); i++ {
		q.flow.Seek(i)
		item, err := q.flow.Current()
		if err != nil {
			return false
		}
		q.flow.Answer(q.drafts[item.ID])
	}
	return q.flow.Next()
}

// Result returns the aggregated result after submission.
func (q *Quiz) Result() (Result, bool) {
	return q.flow.Result()
}

// Review returns the result grid cell for item i.
func (q *Quiz) Review(i int) (ReviewEntry, bool) {
	item, err := q.flow.cursor.At(i)
	if err != nil {
		return ReviewEntry{}, false
	}
	correct, _ := q.flow.Correctness(item.ID)
	idx := i
	if idx < 0 {
		idx = 0
	} else if idx >= q.flow.Len() {
		idx = q.flow.Len() - 1
	}
	return ReviewEntry{Index: idx, Item: item, Answer: q.drafts[item.ID], Correct: correct}, true
}

// Reset clears drafts and returns to the briefing.
func (q *Quiz) Reset() {
	q.flow.Reset()
	q.drafts = make(map[string]quiz.Answer)
}
