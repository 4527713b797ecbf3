package lesson

import (
	"time"

	"github.com/abhisek/lumi/internal/session"
)

const (
	MinSpeed = 0.5
	MaxSpeed = 2.0
)

// Player simulates playback of a lesson. The host drives it with Tick.
type Player struct {
	lesson  Lesson
	points  *session.Cursor[Point]
	pos     time.Duration
	speed   float64
	playing bool
}

// NewPlayer returns a paused player at the start of l.
func NewPlayer(l Lesson) *Player {
	return &Player{
		lesson: l,
		points: session.NewCursor(l.Points),
		speed:  1,
	}
}

// Lesson returns the lesson being played.
func (p *Player) Lesson() Lesson { return p.lesson }

// Playing reports whether the play head is moving.
func (p *Player) Playing() bool { return p.playing }

// Position returns the play head.
func (p *Player) Position() time.Duration { return p.pos }

// Speed returns the playback rate.
func (p *Player) Speed() float64 { return p.speed }

// Play starts playback. At the end it restarts from the beginning.
func (p *Player) Play() {
	if p.Ended() {
		p.SeekTime(0)
	}
	p.playing = true
}

// Pause stops playback.
func (p *Player) Pause() { p.playing = false }

// TogglePlay flips between playing and paused.
func (p *Player) TogglePlay() {
	if p.playing {
		p.Pause()
	} else {
		p.Play()
	}
}

// SetSpeed sets the playback rate, clamped to [MinSpeed, MaxSpeed].
func (p *Player) SetSpeed(s float64) {
	p.speed = min(max(s, MinSpeed), MaxSpeed)
}

// Tick moves the play head by d scaled by the speed. It returns true when
// playback reached the end on this tick.
func (p *Player) Tick(d time.Duration) bool {
	if !p.playing {
		return false
	}
	p.pos += time.Duration(float64(d) * p.speed)
	if p.pos >= p.lesson.Duration() {
		p.pos = p.lesson.Duration()
		p.playing = false
		p.sync()
		return true
	}
	p.sync()
	return false
}

// Ended reports whether the play head is at the end.
func (p *Player) Ended() bool {
	return p.pos >= p.lesson.Duration()
}

// Seek jumps to point i (clamped) and resumes playback.
func (p *Player) Seek(i int) {
	if p.points.Len() == 0 {
		return
	}
	pt, _ := p.points.At(i)
	p.SeekTime(pt.Offset())
	p.playing = true
}

// SeekTime moves the play head, clamped to the lesson.
func (p *Player) SeekTime(t time.Duration) {
	p.pos = min(max(t, 0), p.lesson.Duration())
	p.sync()
}

// Active returns the last point at or before the play head.
func (p *Player) Active() (Point, bool) {
	i := p.activeIndex()
	if i < 0 {
		return Point{}, false
	}
	pt, err := p.points.At(i)
	return pt, err == nil
}

// ActiveIndex returns the index of Active, or -1 before the first point.
func (p *Player) ActiveIndex() int { return p.activeIndex() }

func (p *Player) activeIndex() int {
	idx := -1
	for i, pt := range p.points.Items() {
		if pt.Offset() > p.pos {
			break
		}
		idx = i
	}
	return idx
}

func (p *Player) sync() {
	if i := p.activeIndex(); i >= 0 {
		p.points.Seek(i)
	}
}

// Progress returns the play head as a percentage of the lesson.
func (p *Player) Progress() float64 {
	if p.lesson.DurationSeconds == 0 {
		return 0
	}
	return float64(p.pos) / float64(p.lesson.Duration()) * 100
}
