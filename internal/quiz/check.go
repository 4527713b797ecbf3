package quiz

// Check compares a learner answer against the reference answer for kind.
//
// Single-choice and free-text answers match on exact, case-sensitive string
// equality with no trimming. Multi-choice answers match when the selected
// set equals the correct set; order is ignored and there is no partial
// credit. An empty learner answer is never correct.
func Check(kind Kind, user, correct Answer) bool {
	if user.Empty() || correct.Empty() {
		return false
	}
	switch kind {
	case MultiChoice:
		return sameSet(user, correct)
	case SingleChoice, FreeText:
		return len(user) == 1 && len(correct) == 1 && user[0] == correct[0]
	}
	return false
}

func sameSet(a, b Answer) bool {
	as := toSet(a)
	bs := toSet(b)
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}

func toSet(a Answer) map[string]struct{} {
	s := make(map[string]struct{}, len(a))
	for _, v := range a {
		s[v] = struct{}{}
	}
	return s
}
