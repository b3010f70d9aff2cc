package preload

import "context"

// DataStore binds a Cache to one specific network and a bootstrap default.
// It is the seam a UI observes: after Prepare resolves, every subsequent
// CurrentData call returns the new snapshot.
type DataStore struct {
	cache    *Cache
	network  NetworkID
	fallback Snapshot
}

// NewDataStore constructs a DataStore for network. The fallback snapshot is
// served until the first successful Prepare or Bootstrap publishes a real one.
func NewDataStore(cache *Cache, network NetworkID, fallback Snapshot) *DataStore {
	return &DataStore{
		cache:    cache,
		network:  network,
		fallback: fallback,
	}
}

// Network returns the network this store is bound to
func (s *DataStore) Network() NetworkID {
	return s.network
}

// CurrentData returns the most recently published snapshot. It always returns
// a value: the bootstrap default before the first successful refresh.
func (s *DataStore) CurrentData() Snapshot {
	if snapshot, ok := s.cache.Current(s.network); ok {
		return snapshot
	}
	return s.fallback
}

// Prepare refreshes the snapshot for this store's network
func (s *DataStore) Prepare(ctx context.Context) error {
	return s.cache.Prepare(ctx, s.network)
}
