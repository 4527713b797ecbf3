package content

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lumi/internal/plan"
	"github.com/abhisek/lumi/internal/vault"
)

// Dashboard is everything the home screen needs at start-up.
type Dashboard struct {
	Plan    plan.DayPlan
	Stats   plan.UserStats
	Vault   []vault.Group
	Profile Profile
}

// LoadDashboard fetches the home screen data concurrently. The first error
// cancels the remaining calls.
func LoadDashboard(ctx context.Context, p Provider) (Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Plan, err = p.DailyPlan(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Stats, err = p.UserStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Vault, err = p.MistakeVault(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Profile, err = p.Profile(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
