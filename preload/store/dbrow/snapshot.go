package dbrow

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/screwyprof/stakeview/preload"
)

// PreloadSnapshot represents a persisted snapshot as stored in the database.
// The snapshot payload is kept as an opaque JSON document; fetched_at is
// duplicated into its own column for operational queries.
type PreloadSnapshot struct {
	Network   string    `db:"network"`
	Data      []byte    `db:"data"`
	FetchedAt time.Time `db:"fetched_at"`
}

// FromSnapshot converts a domain snapshot into its database representation
func FromSnapshot(network preload.NetworkID, snapshot preload.Snapshot) (PreloadSnapshot, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return PreloadSnapshot{}, fmt.Errorf("encoding snapshot for %s: %w", network, err)
	}

	return PreloadSnapshot{
		Network:   string(network),
		Data:      data,
		FetchedAt: snapshot.FetchedAt,
	}, nil
}

// ToSnapshot converts a database row back into a domain snapshot
func (r PreloadSnapshot) ToSnapshot() (preload.Snapshot, error) {
	var snapshot preload.Snapshot
	if err := json.Unmarshal(r.Data, &snapshot); err != nil {
		return preload.Snapshot{}, fmt.Errorf("decoding snapshot for %s: %w", r.Network, err)
	}
	return snapshot, nil
}
