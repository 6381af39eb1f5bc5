package mobility

import (
	"context"

	"github.com/antigravity/gangnam-multimodal/internal/cachestore"
)

// Publish serializes the Layer's current snapshot into the shared cache so
// sibling API processes can adopt it instead of independently polling
// every upstream provider.
func (l *Layer) Publish(ctx context.Context, store *cachestore.SnapshotStore, region string) error {
	current := l.Current()
	if current == nil {
		return nil
	}
	return store.Set(ctx, region, current)
}

// RefreshFromShared implements the cache-stampede-avoidance pattern
// SnapshotStore's lock methods exist for: if another process has already
// published a snapshot for region, adopt it; otherwise race for the
// refresh lock, and whoever loses waits for the winner to publish instead
// of every process hitting the upstream feed at once.
func (l *Layer) RefreshFromShared(ctx context.Context, store *cachestore.SnapshotStore, region string) error {
	var shared Snapshot
	ok, err := store.Get(ctx, region, &shared)
	if err != nil {
		return err
	}
	if ok {
		l.Swap(NewSnapshot(shared.Vehicles, shared.Stations))
		return nil
	}

	won, err := store.AcquireLock(ctx, region)
	if err != nil {
		return err
	}
	if !won {
		if err := store.WaitForLock(ctx, region); err != nil {
			return err
		}
		var refreshed Snapshot
		if ok, err := store.Get(ctx, region, &refreshed); err == nil && ok {
			l.Swap(NewSnapshot(refreshed.Vehicles, refreshed.Stations))
		}
		return nil
	}
	defer store.ReleaseLock(ctx, region)

	return l.Publish(ctx, store, region)
}
