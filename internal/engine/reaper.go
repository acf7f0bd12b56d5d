package engine

import (
	"context"
	"fmt"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/metrics"
)

// RunSnapshotReap deletes snapshots past their retention window and returns
// how many were removed. Stores with native expiry report zero.
func (eng *Engine) RunSnapshotReap(ctx context.Context) (int64, error) {
	n, err := eng.store.DeleteExpiredSnapshots(ctx, eng.nowFunc())
	if err != nil {
		return 0, fmt.Errorf("reaping snapshots: %w", err)
	}

	metrics.SnapshotsReapedTotal.Add(float64(n))
	if n > 0 {
		eng.log.Info("expired snapshots reaped", "count", n)
	}
	return n, nil
}
