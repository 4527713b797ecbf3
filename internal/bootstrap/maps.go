package bootstrap

import (
	"context"
	"fmt"

	"github.com/abhisek/lumi/internal/skillmap"
	"github.com/abhisek/lumi/internal/subject"
)

// Walker returns the map walker for subj, loading the map on first use.
// Walkers live as long as Deps so progress survives leaving the map.
func (d *Deps) Walker(ctx context.Context, subj subject.Subject) (*skillmap.Walker, error) {
	if w, ok := d.walkers[subj]; ok {
		return w, nil
	}
	m, err := d.Content.SubjectMap(ctx, subj)
	if err != nil {
		return nil, fmt.Errorf("load %s map: %w", subj, err)
	}
	w, err := skillmap.NewWalker(m)
	if err != nil {
		return nil, err
	}
	if d.walkers == nil {
		d.walkers = make(map[subject.Subject]*skillmap.Walker)
	}
	d.walkers[subj] = w
	return w, nil
}

// CompleteNode finishes a map node and pays out its coins.
func (d *Deps) CompleteNode(ctx context.Context, w *skillmap.Walker, id string, stars int) (skillmap.Node, error) {
	n, err := w.Complete(id, stars)
	if err != nil {
		return skillmap.Node{}, err
	}
	if n.RewardCoins > 0 {
		d.Rewards.Credit(ctx, 0, n.RewardCoins, "map "+n.ID)
	}
	d.Log.Info("map node completed", "node", n.ID, "stars", n.Stars, "coins", n.RewardCoins)
	return n, nil
}
