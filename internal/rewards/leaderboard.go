package rewards

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Period is a leaderboard window.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Periods lists the windows in tab order.
var Periods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly}

// ParsePeriod maps a flag value to a Period. Empty means weekly.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodWeekly, nil
	}
	p := Period(s)
	if !slices.Contains(Periods, p) {
		return "", fmt.Errorf("unknown leaderboard period %q", s)
	}
	return p, nil
}

// DisplayName returns the tab label.
func (p Period) DisplayName() string {
	switch p {
	case PeriodDaily:
		return "日榜"
	case PeriodWeekly:
		return "周榜"
	case PeriodMonthly:
		return "月榜"
	default:
		return string(p)
	}
}

// xpBand returns the base and spread of classmates' XP for p.
func (p Period) xpBand() (base, spread int) {
	switch p {
	case PeriodDaily:
		return 150, 200
	case PeriodMonthly:
		return 8000, 5000
	default:
		return 2000, 1500
	}
}

// Trend is the rank movement arrow.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendSame Trend = "same"
)

// Roster lists the classmates shown on the leaderboard.
type Roster struct {
	Names   []string `yaml:"names" json:"names"`
	Avatars []string `yaml:"avatars" json:"avatars"`
	Me      string   `yaml:"me" json:"me"`
}

// Entry is one leaderboard row.
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	XP     int    `json:"xp"`
	Rank   int    `json:"rank"`
	Me     bool   `json:"me"`
	Trend  Trend  `json:"trend"`
}

// BuildLeaderboard ranks the roster plus the learner for period. Classmate
// XP is drawn from rng; the learner sits at 60% of the band.
func BuildLeaderboard(period Period, roster Roster, rng *rand.Rand) []Entry {
	base, spread := period.xpBand()
	entries := make([]Entry, 0, len(roster.Names)+1)
	for i, name := range roster.Names {
		e := Entry{ID: fmt.Sprintf("student-%d", i), Name: name, XP: base, Trend: TrendSame}
		if len(roster.Avatars) > 0 {
			e.Avatar = roster.Avatars[i%len(roster.Avatars)]
		}
		if rng != nil {
			e.XP = base + rng.IntN(spread)
			if rng.Float64() > 0.5 {
				e.Trend = TrendUp
			}
		}
		entries = append(entries, e)
	}
	entries = append(entries, Entry{
		ID:     "me",
		Name:   roster.Me,
		Avatar: "🤖",
		XP:     base + spread*6/10,
		Me:     true,
		Trend:  TrendUp,
	})

	slices.SortStableFunc(entries, func(a, b Entry) int { return b.XP - a.XP })
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// MyEntry returns the learner's row.
func MyEntry(entries []Entry) (Entry, bool) {
	i := slices.IndexFunc(entries, func(e Entry) bool { return e.Me })
	if i < 0 {
		return Entry{}, false
	}
	return entries[i], true
}
