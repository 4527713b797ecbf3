package rewards

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/lumi/internal/logger"
	"github.com/abhisek/lumi/internal/store"
)

// Service manages the wallet and records every movement.
type Service struct {
	wallet    Wallet
	catalog   Catalog
	eventRepo store.EventRepo
	log       *logger.Logger
}

// NewService creates a Service starting from base. eventRepo and log may
// be nil.
func NewService(base Wallet, catalog Catalog, eventRepo store.EventRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	base.Owned = slices.Clone(base.Owned)
	return &Service{wallet: base, catalog: catalog, eventRepo: eventRepo, log: log}
}

// Wallet returns a copy of the current balance.
func (s *Service) Wallet() Wallet {
	w := s.wallet
	w.Owned = slices.Clone(w.Owned)
	return w
}

// Catalog returns the store items.
func (s *Service) Catalog() Catalog { return s.catalog }

// Restore rebuilds the wallet. A snapshot with a wallet replaces the base
// balance, and only reward events after its sequence are replayed.
func (s *Service) Restore(ctx context.Context, snap *store.Snapshot) error {
	var after int64
	if snap != nil && snap.Data.Wallet != nil {
		w := snap.Data.Wallet
		s.wallet = Wallet{Level: w.Level, LevelXP: w.LevelXP, Coins: w.Coins, Owned: slices.Clone(w.Owned)}
		after = snap.Sequence
	}
	if s.eventRepo == nil {
		return nil
	}
	xp, coins, err := s.eventRepo.RewardTotals(ctx, after)
	if err != nil {
		return fmt.Errorf("reward totals: %w", err)
	}
	owned, err := s.eventRepo.OwnedItems(ctx, after)
	if err != nil {
		return fmt.Errorf("owned items: %w", err)
	}
	s.wallet.AddXP(xp)
	s.wallet.AddCoins(coins)
	for _, id := range owned {
		it, ok := s.catalog.Find(id)
		if !ok || it.Consumable || s.wallet.Owns(id) {
			continue
		}
		s.wallet.Owned = append(s.wallet.Owned, id)
	}
	s.log.Debug("wallet restored", "level", s.wallet.Level, "coins", s.wallet.Coins)
	return nil
}

// Credit adds XP and coins earned for reason and returns the levels gained.
func (s *Service) Credit(ctx context.Context, xp, coins int, reason string) int {
	levels := s.wallet.AddXP(xp)
	s.wallet.AddCoins(coins)
	if xp > 0 {
		s.persist(ctx, store.RewardEventData{Kind: store.RewardXP, Amount: xp, Reason: reason})
	}
	if coins != 0 {
		s.persist(ctx, store.RewardEventData{Kind: store.RewardCoins, Amount: coins, Reason: reason})
	}
	if levels > 0 {
		s.log.Info("level up", "level", s.wallet.Level, "reason", reason)
	}
	return levels
}

// Buy purchases the catalog item with id.
func (s *Service) Buy(ctx context.Context, id string) (Item, error) {
	it, ok := s.catalog.Find(id)
	if !ok {
		return Item{}, fmt.Errorf("unknown store item %q", id)
	}
	if err := s.wallet.Purchase(it); err != nil {
		return Item{}, err
	}
	s.persist(ctx, store.RewardEventData{
		Kind:   store.RewardPurchase,
		Amount: -it.Price,
		ItemID: it.ID,
		Reason: it.Name,
	})
	s.log.Info("store purchase", "item", it.ID, "price", it.Price, "coins", s.wallet.Coins)
	return it, nil
}

// SnapshotData builds the wallet state for snapshot persistence.
func (s *Service) SnapshotData() *store.WalletSnapshotData {
	return &store.WalletSnapshotData{
		Level:   s.wallet.Level,
		LevelXP: s.wallet.LevelXP,
		Coins:   s.wallet.Coins,
		Owned:   slices.Clone(s.wallet.Owned),
	}
}

func (s *Service) persist(ctx context.Context, data store.RewardEventData) {
	if s.eventRepo == nil {
		return
	}
	if err := s.eventRepo.AppendRewardEvent(ctx, data); err != nil {
		s.log.Warn("record reward event failed", "kind", data.Kind, "error", err)
	}
}
