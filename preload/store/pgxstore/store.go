package pgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxc "github.com/zolstein/pgx-collect"

	"github.com/screwyprof/stakeview/preload"
	"github.com/screwyprof/stakeview/preload/store/dbrow"
)

// Sentinel errors for store operations
var (
	ErrLoadFailed = errors.New("snapshot load failed")
	ErrSaveFailed = errors.New("snapshot save failed")
)

// SQL queries
const (
	selectSnapshotSQL = "SELECT network, data, fetched_at FROM preload_snapshots WHERE network = $1"
	selectAllSQL      = "SELECT network, data, fetched_at FROM preload_snapshots"

	upsertSnapshotSQL = `
		INSERT INTO preload_snapshots (network, data, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (network) DO UPDATE SET data = EXCLUDED.data, fetched_at = EXCLUDED.fetched_at`
)

// Store implements preload.Store using pgx
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL snapshot store with an existing connection pool
// Returns the store and a closer function
func New(pool *pgxpool.Pool) (*Store, func()) {
	store := &Store{pool: pool}
	closer := func() {
		pool.Close()
	}
	return store, closer
}

// LoadSnapshot returns the persisted snapshot for network, if any
func (s *Store) LoadSnapshot(ctx context.Context, network preload.NetworkID) (preload.Snapshot, bool, error) {
	var row dbrow.PreloadSnapshot
	err := s.pool.QueryRow(ctx, selectSnapshotSQL, string(network)).
		Scan(&row.Network, &row.Data, &row.FetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return preload.Snapshot{}, false, nil
	}
	if err != nil {
		return preload.Snapshot{}, false, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	snapshot, err := row.ToSnapshot()
	if err != nil {
		return preload.Snapshot{}, false, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return snapshot, true, nil
}

// SaveSnapshot upserts the snapshot for network
func (s *Store) SaveSnapshot(ctx context.Context, network preload.NetworkID, snapshot preload.Snapshot) error {
	row, err := dbrow.FromSnapshot(network, snapshot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	_, err = s.pool.Exec(ctx, upsertSnapshotSQL, row.Network, row.Data, row.FetchedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

// LoadAll returns every persisted snapshot keyed by network.
// Used by daemons to warm the in-memory cache on start.
func (s *Store) LoadAll(ctx context.Context) (map[preload.NetworkID]preload.Snapshot, error) {
	rows, err := s.pool.Query(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	dbRows, err := pgxc.CollectRows(rows, pgxc.RowToStructByName[dbrow.PreloadSnapshot])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	snapshots := make(map[preload.NetworkID]preload.Snapshot, len(dbRows))
	for _, row := range dbRows {
		snapshot, err := row.ToSnapshot()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		snapshots[preload.NetworkID(row.Network)] = snapshot
	}
	return snapshots, nil
}
