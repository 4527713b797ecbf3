package rewards

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrLocked            = errors.New("item is locked at this level")
	ErrAlreadyOwned      = errors.New("item already owned")
)

// XPPerLevel scales the XP needed to leave a level: level n needs n*XPPerLevel.
const XPPerLevel = 1000

// Wallet is the learner's balance and level.
type Wallet struct {
	Level   int      `json:"level"`
	LevelXP int      `json:"level_xp"`
	Coins   int      `json:"coins"`
	Owned   []string `json:"owned,omitempty"`
}

// NextLevelXP returns the XP needed to finish the current level.
func (w Wallet) NextLevelXP() int {
	return max(w.Level, 1) * XPPerLevel
}

// LevelProgress returns the fraction of the current level completed.
func (w Wallet) LevelProgress() float64 {
	return float64(w.LevelXP) / float64(w.NextLevelXP())
}

// AddXP credits xp and returns how many levels were gained.
func (w *Wallet) AddXP(xp int) int {
	if xp <= 0 {
		return 0
	}
	if w.Level < 1 {
		w.Level = 1
	}
	gained := 0
	w.LevelXP += xp
	for w.LevelXP >= w.NextLevelXP() {
		w.LevelXP -= w.NextLevelXP()
		w.Level++
		gained++
	}
	return gained
}

// AddCoins credits (or debits, when negative) coins. The balance never
// drops below zero.
func (w *Wallet) AddCoins(n int) {
	w.Coins = max(w.Coins+n, 0)
}

// Owns reports whether a non-consumable item was bought.
func (w Wallet) Owns(id string) bool {
	return slices.Contains(w.Owned, id)
}

// CanBuy returns the reason it cannot be bought, or nil.
func (w Wallet) CanBuy(it Item) error {
	switch {
	case it.MinLevel > 0 && w.Level < it.MinLevel:
		return fmt.Errorf("%w: %s needs Lv.%d", ErrLocked, it.Name, it.MinLevel)
	case !it.Consumable && w.Owns(it.ID):
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, it.Name)
	case w.Coins < it.Price:
		return fmt.Errorf("%w: %s costs %d, balance %d", ErrInsufficientCoins, it.Name, it.Price, w.Coins)
	}
	return nil
}

// Purchase debits the price of it and records ownership.
func (w *Wallet) Purchase(it Item) error {
	if err := w.CanBuy(it); err != nil {
		return err
	}
	w.Coins -= it.Price
	if !it.Consumable {
		w.Owned = append(w.Owned, it.ID)
	}
	return nil
}

// Availability is how an item shows in the store for a wallet.
type Availability string

const (
	Available   Availability = "available"
	Owned       Availability = "owned"
	LevelLocked Availability = "locked"
	NeedsCoins  Availability = "need coins"
)

// Availability classifies it for the store listing.
func (w Wallet) Availability(it Item) Availability {
	err := w.CanBuy(it)
	switch {
	case err == nil:
		return Available
	case errors.Is(err, ErrAlreadyOwned):
		return Owned
	case errors.Is(err, ErrLocked):
		return LevelLocked
	}
	return NeedsCoins
}
