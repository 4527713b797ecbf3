package lesson

import (
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/session"
)

// Phase is a step of the learning flow.
type Phase string

const (
	PhaseLesson Phase = "lesson"
	PhaseQuiz   Phase = "quiz"
	PhaseReview Phase = "review"
)

// LearningFlow plays a lesson, quizzes on it, then replays the lesson in
// review mode.
type LearningFlow struct {
	phases *session.Sequencer[Phase]
	lesson Lesson
	player *Player
	quiz   *session.Quiz
}

// NewLearningFlow creates a flow positioned on the lesson.
func NewLearningFlow(l Lesson, items []quiz.Item) *LearningFlow {
	return &LearningFlow{
		phases: session.NewSequencer(PhaseLesson, PhaseQuiz, PhaseReview),
		lesson: l,
		player: NewPlayer(l),
		quiz:   session.NewQuiz(items),
	}
}

// Phase returns the current phase.
func (f *LearningFlow) Phase() Phase { return f.phases.Current() }

// Player returns the lesson player for the lesson and review phases.
func (f *LearningFlow) Player() *Player { return f.player }

// Quiz returns the quiz for the quiz phase.
func (f *LearningFlow) Quiz() *session.Quiz { return f.quiz }

// FinishLesson moves from the lesson to the quiz and starts it.
func (f *LearningFlow) FinishLesson() bool {
	if f.Phase() != PhaseLesson {
		return false
	}
	f.player.Pause()
	f.phases.Advance()
	f.quiz.Start()
	return true
}

// Review moves from a submitted quiz to the lesson replay.
func (f *LearningFlow) Review() bool {
	if f.Phase() != PhaseQuiz {
		return false
	}
	if _, ok := f.quiz.Result(); !ok {
		return false
	}
	f.player = NewPlayer(f.lesson)
	f.phases.Advance()
	return true
}
