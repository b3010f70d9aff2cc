package preload

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// Cache is a keyed in-memory cache of preload snapshots backed by injected
// fetch and persistence capabilities. Snapshots are published atomically per
// network; readers never observe a partially-updated snapshot.
type Cache struct {
	fetcher Fetcher
	store   Store

	mu        sync.RWMutex
	nextSeq   uint64
	published map[NetworkID]publication
}

// publication pairs a snapshot with the sequence of the fetch that produced it.
// The sequence is assigned when the fetch starts, so a slow fetch that started
// earlier can never overwrite the result of one that started later.
type publication struct {
	snapshot Snapshot
	seq      uint64
}

// NewCache constructs a Cache with the given fetch and persistence capabilities
func NewCache(fetcher Fetcher, store Store) *Cache {
	return &Cache{
		fetcher:   fetcher,
		store:     store,
		published: make(map[NetworkID]publication),
	}
}

// NewReadCache constructs a Cache without a fetch capability. Prepare fails;
// use Bootstrap or a StoreReloader to follow snapshots persisted elsewhere.
func NewReadCache(store Store) *Cache {
	return NewCache(nil, store)
}

// Prepare fetches fresh preload data for network, persists it via the store
// capability, and publishes it into the in-memory cache. It is safe to call
// concurrently for the same network: whichever fetch started last wins, and an
// out-of-order completion never replaces a newer published snapshot.
// On failure the previously published snapshot remains current and the error
// is returned to the caller only.
func (c *Cache) Prepare(ctx context.Context, network NetworkID) error {
	if c.fetcher == nil {
		return fmt.Errorf("%w: cache has no fetcher", ErrFetchFailed)
	}

	seq := c.claimSeq()

	snapshot, err := c.fetcher.FetchSnapshot(ctx, network)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if err := c.store.SaveSnapshot(ctx, network, snapshot); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	c.publish(network, snapshot, seq)
	return nil
}

// PrepareAll refreshes several networks concurrently with bounded parallelism.
// Failures are collected per network; a failed network keeps its previous snapshot.
func (c *Cache) PrepareAll(ctx context.Context, networks ...NetworkID) error {
	p := pool.New().
		WithErrors().
		WithContext(ctx).
		WithMaxGoroutines(DefaultMaxConcurrent)

	for _, network := range networks {
		p.Go(func(ctx context.Context) error {
			if err := c.Prepare(ctx, network); err != nil {
				return fmt.Errorf("prepare %s: %w", network, err)
			}
			return nil
		})
	}

	return p.Wait()
}

// Bootstrap loads the persisted snapshot for network into the cache without
// fetching. A missing persisted snapshot is a soft miss, not an error.
func (c *Cache) Bootstrap(ctx context.Context, network NetworkID) error {
	seq := c.claimSeq()

	snapshot, found, err := c.store.LoadSnapshot(ctx, network)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if !found {
		return nil
	}

	c.publish(network, snapshot, seq)
	return nil
}

// Current returns the most recently published snapshot for network.
// The boolean reports whether anything has been published yet.
func (c *Cache) Current(network NetworkID) (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pub, ok := c.published[network]
	return pub.snapshot, ok
}

// claimSeq hands out a monotonically increasing sequence number
func (c *Cache) claimSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSeq++
	return c.nextSeq
}

// publish replaces the published snapshot unless a newer fetch already published
func (c *Cache) publish(network NetworkID, snapshot Snapshot, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.published[network]; ok && current.seq > seq {
		return
	}
	c.published[network] = publication{snapshot: snapshot, seq: seq}
}
