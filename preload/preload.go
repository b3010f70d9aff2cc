package preload

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for failure cases
var (
	ErrFetchFailed = errors.New("preload fetch failed")
	ErrSaveFailed  = errors.New("preload save failed")
	ErrLoadFailed  = errors.New("preload load failed")
)

// Default configuration values
const (
	DefaultRefreshInterval = 30 * time.Minute
	DefaultMaxAttempts     = 3
	DefaultMaxConcurrent   = 4
)

// NetworkID identifies a blockchain network whose preload data is cached
type NetworkID string

// ValidatorInfo describes one validator from a published snapshot
type ValidatorInfo struct {
	ValidatorAddress string  `json:"validatorAddress"`
	Name             string  `json:"name"`
	VotingPower      float64 `json:"votingPower"`
	Commission       float64 `json:"commission"`
	Rank             int     `json:"rank"`
}

// Snapshot is the network-wide preload data published for one network.
// A snapshot is immutable once published and replaced wholesale on refresh.
type Snapshot struct {
	Validators []ValidatorInfo `json:"validators"`
	FetchedAt  time.Time       `json:"fetchedAt"`
}

// Lookup returns the validator with the given address, if present
func (s Snapshot) Lookup(address string) (ValidatorInfo, bool) {
	for _, v := range s.Validators {
		if v.ValidatorAddress == address {
			return v, true
		}
	}
	return ValidatorInfo{}, false
}

// Fetcher retrieves fresh preload data for a network
// ---------------------------------------------------
type Fetcher interface {
	FetchSnapshot(ctx context.Context, network NetworkID) (Snapshot, error)
}

// Store provides persistence for preload snapshots.
// LoadSnapshot is the cold-start read; SaveSnapshot is the persistence side effect
// applied on every successful refresh.
type Store interface {
	LoadSnapshot(ctx context.Context, network NetworkID) (Snapshot, bool, error)
	SaveSnapshot(ctx context.Context, network NetworkID, snapshot Snapshot) error
}

// Preparer refreshes the published snapshot for one network
type Preparer interface {
	Prepare(ctx context.Context, network NetworkID) error
}

// Clock abstracts time for production and testing
// ------------------------------------------------
type Clock interface {
	After(d time.Duration) <-chan time.Time
	Now() time.Time
}

// Event represents a refresh service lifecycle event
// --------------------------------------------------
type Event any

type RefreshStarted struct {
	Network   NetworkID
	StartedAt time.Time
}

type RefreshCompleted struct {
	Network  NetworkID
	Duration time.Duration
}

type RefreshError struct {
	Network NetworkID
	Attempt int
	Err     error
}

type PollingStarted struct {
	Interval time.Duration
}

type PollingShutdown struct {
	Reason error // Why shutdown occurred (ctx.Err())
}
