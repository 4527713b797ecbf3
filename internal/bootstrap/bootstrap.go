// Package bootstrap opens the store, builds the content and LLM providers
// and restores the learner's services. The TUI, the CLI commands and the
// API server all start from a Deps.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/lumi/internal/config"
	"github.com/abhisek/lumi/internal/content"
	"github.com/abhisek/lumi/internal/llm"
	"github.com/abhisek/lumi/internal/logger"
	"github.com/abhisek/lumi/internal/plan"
	"github.com/abhisek/lumi/internal/rewards"
	"github.com/abhisek/lumi/internal/skillmap"
	"github.com/abhisek/lumi/internal/store"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/vault"
)

// snapshotKeep is how many snapshots survive a prune.
const snapshotKeep = 20

// Options tunes Open.
type Options struct {
	// NoStore runs without a database; nothing is persisted.
	NoStore bool
	// Now replaces the clock.
	Now func() time.Time
}

// Deps is the assembled application state.
type Deps struct {
	Config  config.Config
	Log     *logger.Logger
	Content content.Provider
	Static  *content.Static
	// LLM is nil when generation is off.
	LLM llm.Provider

	Board   *plan.Board
	Stats   plan.UserStats
	Vault   *vault.Service
	Rewards *rewards.Service
	Profile content.Profile
	Rand    *rand.Rand

	store   *store.Store
	walkers map[subject.Subject]*skillmap.Walker
	now     func() time.Time
}

// Open builds Deps from cfg. log may be nil.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger, opts Options) (*Deps, error) {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	d := &Deps{Config: cfg, Log: log, now: opts.Now, Rand: NewRand(cfg.Seed)}

	if !opts.NoStore {
		st, err := openStore(cfg.DB)
		if err != nil {
			return nil, err
		}
		d.store = st
	}

	if err := d.buildContent(ctx); err != nil {
		d.closeStore()
		return nil, err
	}
	if err := d.restore(ctx); err != nil {
		d.closeStore()
		return nil, err
	}
	return d, nil
}

// NewRand returns the seeded generator. Zero picks a seed from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func openStore(path string) (*store.Store, error) {
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		path = p
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create DB dir: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func (d *Deps) buildContent(ctx context.Context) error {
	pack, err := loadPack(d.Config.ContentPack)
	if err != nil {
		return err
	}
	d.Static = content.NewStatic(pack, content.WithLatency(d.Config.Latency))
	d.Content = d.Static

	if d.Config.LLM.Enabled() {
		p, err := llm.NewProvider(ctx, d.Config.LLM, d.EventRepo(), d.Log)
		switch {
		case err == nil:
			d.LLM = p
			d.Content = content.NewGenerative(d.Static, p, d.Log)
		case errors.Is(err, llm.ErrDisabled):
		default:
			d.Log.Warn("LLM provider unavailable, using bundled content", "provider", d.Config.LLM.Provider, "error", err)
		}
	}
	return nil
}

func loadPack(path string) (*content.Pack, error) {
	if path == "" {
		return content.DefaultPack()
	}
	return content.LoadPackFile(path)
}

func (d *Deps) restore(ctx context.Context) error {
	dash, err := content.LoadDashboard(ctx, d.Content)
	if err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}
	d.Board = plan.NewBoard(dash.Plan)
	d.Stats = dash.Stats
	d.Profile = dash.Profile

	catalog, err := d.Content.StoreCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load store catalog: %w", err)
	}

	snap, err := d.latestSnapshot(ctx)
	if err != nil {
		return err
	}

	repo := d.EventRepo()
	d.Vault = vault.NewService(vault.New(dash.Vault), repo, d.Log)
	if err := d.Vault.Restore(ctx); err != nil {
		return fmt.Errorf("restore vault: %w", err)
	}
	d.Rewards = rewards.NewService(dash.Profile.Wallet(), catalog, repo, d.Log)
	if err := d.Rewards.Restore(ctx, snap); err != nil {
		return fmt.Errorf("restore wallet: %w", err)
	}
	d.restorePlan(snap)
	return nil
}

func (d *Deps) latestSnapshot(ctx context.Context) (*store.Snapshot, error) {
	repo := d.SnapshotRepo()
	if repo == nil {
		return nil, nil
	}
	snap, err := repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// restorePlan re-applies today's completed tasks from the snapshot.
func (d *Deps) restorePlan(snap *store.Snapshot) {
	if snap == nil || snap.Data.Plan == nil || snap.Data.Plan.Day != d.today() {
		return
	}
	d.Board.Restore(snap.Data.Plan.Completed)
}

func (d *Deps) today() string { return d.now().Format(time.DateOnly) }

// EventRepo returns the event repository, or nil without a store.
func (d *Deps) EventRepo() store.EventRepo {
	if d.store == nil {
		return nil
	}
	return d.store.EventRepo()
}

// SnapshotRepo returns the snapshot repository, or nil without a store.
func (d *Deps) SnapshotRepo() store.SnapshotRepo {
	if d.store == nil {
		return nil
	}
	return d.store.SnapshotRepo()
}

// SaveSnapshot persists the wallet and today's plan progress.
func (d *Deps) SaveSnapshot(ctx context.Context) error {
	repo := d.SnapshotRepo()
	if repo == nil {
		return nil
	}
	p := d.Board.Plan()
	snap := &store.Snapshot{
		Timestamp: d.now(),
		Data: store.SnapshotData{
			Version: 1,
			Wallet:  d.Rewards.SnapshotData(),
			Plan: &store.PlanSnapshotData{
				PlanID:    p.ID,
				Day:       d.today(),
				Completed: d.Board.Completed(),
			},
		},
	}
	if err := repo.Save(ctx, snap); err != nil {
		return err
	}
	return repo.Prune(ctx, snapshotKeep)
}

// Close saves a final snapshot and closes the store.
func (d *Deps) Close(ctx context.Context) error {
	err := d.SaveSnapshot(ctx)
	if err != nil {
		d.Log.Warn("save snapshot failed", "error", err)
	}
	return errors.Join(err, d.closeStore())
}

func (d *Deps) closeStore() error {
	if d.store == nil {
		return nil
	}
	st := d.store
	d.store = nil
	return st.Close()
}

// Reset deletes the database file at path. Empty path means the default.
func Reset(path string) (string, error) {
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return "", err
		}
		path = p
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return path, fmt.Errorf("remove %s: %w", path+suffix, err)
		}
	}
	return path, nil
}
