package vault

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/lumi/internal/subject"
)

var (
	ErrNotFound = errors.New("mistake item not found")
	ErrStale    = errors.New("confirmation no longer matches item status")
)

// StatusFilter selects items by status in Filter.
type StatusFilter string

const (
	ShowPending   StatusFilter = "pending" // Everything not mastered
	ShowNew       StatusFilter = "new"
	ShowReviewing StatusFilter = "reviewing"
	ShowMastered  StatusFilter = "mastered"
	ShowAll       StatusFilter = "all"
)

// Filter narrows the vault listing. A zero Subject matches every subject.
type Filter struct {
	Subject subject.Subject
	Status  StatusFilter
}

// Vault holds mistake items grouped by topic. It is owned by a single
// screen or command and is not safe for concurrent use.
type Vault struct {
	groups []Group
}

// New builds a vault from a deep copy of groups.
func New(groups []Group) *Vault {
	v := &Vault{groups: make([]Group, len(groups))}
	for i, g := range groups {
		items := make([]Item, len(g.Items))
		for j, it := range g.Items {
			it.Tags = slices.Clone(it.Tags)
			if it.Status == "" {
				it.Status = StatusNew
			}
			items[j] = it
		}
		v.groups[i] = Group{Topic: g.Topic, Items: items}
	}
	return v
}

// Groups returns a copy of all groups.
func (v *Vault) Groups() []Group {
	return v.Filter(Filter{Status: ShowAll})
}

// Find returns the item with id.
func (v *Vault) Find(id string) (Item, error) {
	it, err := v.lookup(id)
	if err != nil {
		return Item{}, err
	}
	return *it, nil
}

func (v *Vault) lookup(id string) (*Item, error) {
	for gi := range v.groups {
		for ii := range v.groups[gi].Items {
			if v.groups[gi].Items[ii].ID == id {
				return &v.groups[gi].Items[ii], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Filter returns the groups matching f with empty groups dropped.
func (v *Vault) Filter(f Filter) []Group {
	var out []Group
	for _, g := range v.groups {
		var items []Item
		for _, it := range g.Items {
			if f.Subject != "" && it.Subject != f.Subject {
				continue
			}
			if !matchStatus(f.Status, it.Status) {
				continue
			}
			it.Tags = slices.Clone(it.Tags)
			items = append(items, it)
		}
		if len(items) > 0 {
			out = append(out, Group{Topic: g.Topic, Items: items})
		}
	}
	return out
}

// ParseStatusFilter maps a flag value to a StatusFilter. Empty means pending.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(s); f {
	case "":
		return ShowPending, nil
	case ShowPending, ShowNew, ShowReviewing, ShowMastered, ShowAll:
		return f, nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

func matchStatus(f StatusFilter, s Status) bool {
	switch f {
	case ShowAll:
		return true
	case "", ShowPending:
		return s != StatusMastered
	default:
		return Status(f) == s
	}
}

// Pending returns all unmastered items in group order.
func (v *Vault) Pending() []Item {
	var out []Item
	for _, g := range v.Filter(Filter{Status: ShowPending}) {
		out = append(out, g.Items...)
	}
	return out
}

// PendingCount returns the number of unmastered items.
func (v *Vault) PendingCount() int {
	n := 0
	for _, g := range v.groups {
		for _, it := range g.Items {
			if it.Pending() {
				n++
			}
		}
	}
	return n
}

// StatusCounts returns how many items sit in each status.
func (v *Vault) StatusCounts() map[Status]int {
	counts := make(map[Status]int, 3)
	for _, g := range v.groups {
		for _, it := range g.Items {
			counts[it.Status]++
		}
	}
	return counts
}

// SubjectStats computes pending counts and solved percentages per subject,
// in subject display order. Subjects without items are omitted.
func (v *Vault) SubjectStats() []SubjectStat {
	totals := make(map[subject.Subject]*SubjectStat)
	for _, g := range v.groups {
		for _, it := range g.Items {
			st, ok := totals[it.Subject]
			if !ok {
				st = &SubjectStat{Subject: it.Subject}
				totals[it.Subject] = st
			}
			st.TotalItems++
			if it.Pending() {
				st.Pending++
			}
		}
	}

	var out []SubjectStat
	for _, s := range subject.All {
		st, ok := totals[s]
		if !ok {
			continue
		}
		st.SolvedPercent = (st.TotalItems - st.Pending) * 100 / st.TotalItems
		out = append(out, *st)
	}
	return out
}

// ToggleStar flips the starred flag and returns the new value.
func (v *Vault) ToggleStar(id string) (bool, error) {
	it, err := v.lookup(id)
	if err != nil {
		return false, err
	}
	it.Stats.Starred = !it.Stats.Starred
	return it.Stats.Starred, nil
}

// SetStar sets the starred flag.
func (v *Vault) SetStar(id string, starred bool) error {
	it, err := v.lookup(id)
	if err != nil {
		return err
	}
	it.Stats.Starred = starred
	return nil
}

// ConfirmKind is the action a confirmation dialog asks about.
type ConfirmKind string

const (
	ConfirmMaster   ConfirmKind = "master"
	ConfirmUnmaster ConfirmKind = "unmaster"
)

// Confirmation is a pending master/unmaster request awaiting the learner's OK.
type Confirmation struct {
	ItemID string
	Kind   ConfirmKind
	From   Status
}

// RequestToggle prepares the confirmation for flipping an item's mastery.
// Nothing changes until Confirm is called.
func (v *Vault) RequestToggle(id string) (Confirmation, error) {
	it, err := v.lookup(id)
	if err != nil {
		return Confirmation{}, err
	}
	kind := ConfirmMaster
	if it.Status == StatusMastered {
		kind = ConfirmUnmaster
	}
	return Confirmation{ItemID: id, Kind: kind, From: it.Status}, nil
}

// Confirm applies a confirmation. Mastering sets the item to mastered;
// unmastering sends it back to reviewing.
func (v *Vault) Confirm(c Confirmation) (Transition, error) {
	it, err := v.lookup(c.ItemID)
	if err != nil {
		return Transition{}, err
	}
	if it.Status != c.From {
		return Transition{}, fmt.Errorf("%w: %s is %s", ErrStale, c.ItemID, it.Status)
	}
	to := StatusMastered
	if c.Kind == ConfirmUnmaster {
		to = StatusReviewing
	}
	return v.setStatus(it, to, TriggerConfirm), nil
}

// CommitMastered marks the ids won in a daily conquer run as mastered.
// Unknown and already-mastered ids are skipped.
func (v *Vault) CommitMastered(ids []string) []Transition {
	var out []Transition
	for _, id := range ids {
		it, err := v.lookup(id)
		if err != nil || it.Status == StatusMastered {
			continue
		}
		out = append(out, v.setStatus(it, StatusMastered, TriggerConquer))
	}
	return out
}

// RecordReview updates statistics after a practice attempt. A new item
// moves to reviewing; mastery always needs a confirmation or a conquer run.
func (v *Vault) RecordReview(id string, correct bool, at time.Time) (*Transition, error) {
	it, err := v.lookup(id)
	if err != nil {
		return nil, err
	}
	it.Stats.ReviewCount++
	if correct {
		it.Stats.ConsecutiveCorrect++
	} else {
		it.Stats.ConsecutiveCorrect = 0
		it.Stats.ErrorCount++
		it.Stats.LastWrongDate = at
	}
	if it.Status == StatusNew {
		t := v.setStatus(it, StatusReviewing, TriggerReview)
		return &t, nil
	}
	return nil, nil
}

// Restore applies persisted statuses on top of the provider's data.
func (v *Vault) Restore(statuses map[string]string) []Transition {
	var out []Transition
	for id, raw := range statuses {
		to := Status(raw)
		if !to.Valid() {
			continue
		}
		it, err := v.lookup(id)
		if err != nil || it.Status == to {
			continue
		}
		out = append(out, v.setStatus(it, to, TriggerRestore))
	}
	return out
}

func (v *Vault) setStatus(it *Item, to Status, trigger Trigger) Transition {
	t := Transition{ItemID: it.ID, From: it.Status, To: to, Trigger: trigger}
	it.Status = to
	return t
}
