package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/courtside/internal/client/models"
)

// BulkResult reports the outcome of every id of a bulk operation.
type BulkResult struct {
	Removed []models.ID
	Failed  map[models.ID]error
}

// OK reports whether every item succeeded.
func (r BulkResult) OK() bool { return len(r.Failed) == 0 }

// RemoveMany removes every id independently with bounded concurrency.
// There is no transactional guarantee: successes stay applied when others
// fail. The returned error joins the per-item failures and is also
// recorded on the store.
func (s *Store[T]) RemoveMany(ctx context.Context, ids []models.ID) (BulkResult, error) {
	res := BulkResult{Removed: []models.ID{}, Failed: map[models.ID]error{}}

	unique := make([]models.ID, 0, len(ids))
	seen := map[models.ID]bool{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(max(s.opts.bulkConcurrency, 1))
	for _, id := range unique {
		g.Go(func() error {
			err := s.Remove(ctx, id)
			if err != nil {
				s.opts.logger.Warn(ctx, "bulk remove item failed", "store", s.cfg.Name, "id", id, "error", err)
			}
			mu.Lock()
			if err != nil {
				res.Failed[id] = err
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, id := range unique {
		if err, failed := res.Failed[id]; failed {
			errs = append(errs, fmt.Errorf("remove %s: %w", id, err))
			continue
		}
		res.Removed = append(res.Removed, id)
	}
	agg := errors.Join(errs...)

	s.finish(ctx, "", 0, agg, nil)
	return res, agg
}
