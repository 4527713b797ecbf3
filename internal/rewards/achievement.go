package rewards

// Achievement is a badge on the growth profile.
type Achievement struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Unlocked    bool   `yaml:"unlocked" json:"unlocked"`
	UnlockedOn  string `yaml:"unlocked_on" json:"unlocked_on,omitempty"`
}

// UnlockedCount returns how many achievements are unlocked.
func UnlockedCount(list []Achievement) int {
	n := 0
	for _, a := range list {
		if a.Unlocked {
			n++
		}
	}
	return n
}
