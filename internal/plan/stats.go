package plan

// UserStats are the headline numbers shown on the dashboard.
type UserStats struct {
	XPToday           int `yaml:"xp_today" json:"xp_today"`
	XPTarget          int `yaml:"xp_target" json:"xp_target"`
	StudyMinutesToday int `yaml:"study_minutes_today" json:"study_minutes_today"`
	StreakDays        int `yaml:"streak_days" json:"streak_days"`
	Coins             int `yaml:"coins" json:"coins"`
}

// XPProgress returns today's XP as a fraction of the target, capped at 1.
func (s UserStats) XPProgress() float64 {
	if s.XPTarget <= 0 {
		return 0
	}
	return min(float64(s.XPToday)/float64(s.XPTarget), 1)
}

// XPRemaining returns how much XP is left to reach today's target.
func (s UserStats) XPRemaining() int {
	return max(s.XPTarget-s.XPToday, 0)
}

// Credit adds XP and study minutes earned in a session.
func (s *UserStats) Credit(xp, minutes int) {
	s.XPToday += xp
	s.StudyMinutesToday += minutes
}
