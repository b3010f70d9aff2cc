package staking

import (
	"errors"

	"github.com/screwyprof/stakeview/preload"
)

// Sentinel errors for integration preconditions
var (
	// ErrMissingDelegationResources indicates the account collaborator handed us
	// an account without the expected delegation resource structure. This is a
	// caller bug, not a runtime condition, so it fails fast.
	ErrMissingDelegationResources = errors.New("account is missing delegation resources")
)

// Account is the staking view of a delegated-staking account as supplied by
// the account collaborator. Read-only to this package.
type Account struct {
	ID        string
	Unit      Unit
	Resources *DelegationResources
}

// DelegationResources holds the raw delegation records synchronised for an account
type DelegationResources struct {
	Delegations []DelegationRecord
}

// DelegationRecord is one raw delegation as recorded on the account
type DelegationRecord struct {
	ValidatorAddress string
	Amount           int64
	PendingRewards   int64
}

// MappedDelegation is a display-ready delegation record: the raw record joined
// with validator metadata from the current preload snapshot and formatted with
// the account's currency unit. Created fresh on each mapping call.
type MappedDelegation struct {
	Validator               preload.ValidatorInfo
	Amount                  int64
	PendingRewards          int64
	FormattedAmount         string
	FormattedPendingRewards string
	Rank                    int
}
