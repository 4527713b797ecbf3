package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData captures the learner state at a point in time.
type SnapshotData struct {
	Version int                 `json:"version"`
	Wallet  *WalletSnapshotData `json:"wallet,omitempty"`
	Plan    *PlanSnapshotData   `json:"plan,omitempty"`
}

// WalletSnapshotData is the persisted rewards balance.
type WalletSnapshotData struct {
	Level   int      `json:"level"`
	LevelXP int      `json:"level_xp"`
	Coins   int      `json:"coins"`
	Owned   []string `json:"owned,omitempty"`
}

// PlanSnapshotData records which plan tasks were completed on a given day.
type PlanSnapshotData struct {
	PlanID    string   `json:"plan_id"`
	Day       string   `json:"day"`
	Completed []string `json:"completed,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state. Sequence is
// the last event folded into Data; Save stamps it when left zero.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage summarises recorded LLM traffic for one model.
type LLMUsage struct {
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// SessionEventData records a finished quiz, daily conquer or assessment stage.
type SessionEventData struct {
	SessionID   string
	StartedAt   time.Time // zero when the host did not track it
	Mode        string // quiz, conquer, assessment
	Subject     string
	Correct     int
	Total       int
	MaxCombo    int
	XPEarned    int
	MasteredIDs []string
}

// SessionEventRecord is a persisted session event.
type SessionEventRecord struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// MistakeEventData records a mistake item status transition.
type MistakeEventData struct {
	ItemID     string
	FromStatus string
	ToStatus   string
	Trigger    string // confirm, conquer, review
}

// MistakeEventRecord is a persisted mistake transition.
type MistakeEventRecord struct {
	MistakeEventData
	Sequence  int64
	Timestamp time.Time
}

// Reward event kinds.
const (
	RewardXP       = "xp"
	RewardCoins    = "coins"
	RewardPurchase = "purchase"
)

// RewardEventData records XP and coin movements.
type RewardEventData struct {
	Kind   string // xp, coins, purchase
	Amount int    // signed; purchases are negative coin amounts
	ItemID string
	Reason string
}

// RewardEventRecord is a persisted reward event.
type RewardEventRecord struct {
	RewardEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendSessionEvent records a finished session.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendMistakeEvent records a mistake status transition.
	AppendMistakeEvent(ctx context.Context, data MistakeEventData) error

	// AppendRewardEvent records an XP, coin or purchase movement.
	AppendRewardEvent(ctx context.Context, data RewardEventData) error

	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// QueryMistakeEvents returns mistake transitions, newest first.
	QueryMistakeEvents(ctx context.Context, opts QueryOpts) ([]MistakeEventRecord, error)

	// QueryRewardEvents returns reward events, newest first.
	QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error)

	// MistakeStatuses returns the latest recorded status per mistake item.
	MistakeStatuses(ctx context.Context) (map[string]string, error)

	// RewardTotals sums XP and net coin movements recorded after the
	// given sequence.
	RewardTotals(ctx context.Context, after int64) (xp, coins int, err error)

	// OwnedItems returns the store item IDs purchased after the given
	// sequence.
	OwnedItems(ctx context.Context, after int64) ([]string, error)

	// LLMUsage summarises LLM request events per model.
	LLMUsage(ctx context.Context) ([]LLMUsage, error)
}
