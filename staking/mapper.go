package staking

import (
	"github.com/screwyprof/stakeview/preload"
)

// Mapper turns raw account delegation records into display-ready records using
// the current preload snapshot. Mapping is pure and synchronous: it reads
// whatever snapshot is published at call time.
type Mapper struct {
	store *preload.DataStore
}

// NewMapper constructs a Mapper over the given preload data store
func NewMapper(store *preload.DataStore) *Mapper {
	return &Mapper{store: store}
}

// MapDelegations maps each of the account's delegation records to the matching
// validator in the current snapshot, preserving record order. Records whose
// validator is absent from the snapshot are skipped: snapshot and account sync
// independently, so a transient mismatch is expected, not an error.
// When mode is ModeClaimReward, only records with pending rewards remain.
func (m *Mapper) MapDelegations(account Account, mode Mode) ([]MappedDelegation, error) {
	if account.Resources == nil {
		return nil, ErrMissingDelegationResources
	}

	snapshot := m.store.CurrentData()

	mapped := make([]MappedDelegation, 0, len(account.Resources.Delegations))
	for _, record := range account.Resources.Delegations {
		validator, ok := snapshot.Lookup(record.ValidatorAddress)
		if !ok {
			continue
		}
		if mode == ModeClaimReward && record.PendingRewards <= 0 {
			continue
		}

		mapped = append(mapped, MappedDelegation{
			Validator:               validator,
			Amount:                  record.Amount,
			PendingRewards:          record.PendingRewards,
			FormattedAmount:         account.Unit.Format(record.Amount),
			FormattedPendingRewards: account.Unit.Format(record.PendingRewards),
			Rank:                    validator.Rank,
		})
	}
	return mapped, nil
}
