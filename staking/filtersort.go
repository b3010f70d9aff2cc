package staking

import (
	"sort"
	"strings"

	"github.com/screwyprof/stakeview/preload"
)

// Filter keeps the records whose validator name or address contains query,
// case-insensitively. An empty query returns all records unfiltered.
func Filter(records []MappedDelegation, query string) []MappedDelegation {
	if strings.TrimSpace(query) == "" {
		return records
	}

	needle := strings.ToLower(query)
	filtered := make([]MappedDelegation, 0, len(records))
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Validator.Name), needle) ||
			strings.Contains(strings.ToLower(record.Validator.ValidatorAddress), needle) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// FilterAndSort filters records by query and orders them by delegated amount,
// largest first. This is the decision-context ordering used when picking a
// default selection.
func FilterAndSort(records []MappedDelegation, query string) []MappedDelegation {
	filtered := Filter(records, query)

	sorted := make([]MappedDelegation, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})
	return sorted
}

// SortedValidators returns every validator in the snapshot as a mapped record,
// merging in existing delegated amounts where the account already delegates,
// ordered by rank ascending and then filtered by query. This is the discovery
// ordering used when listing validators.
func SortedValidators(query string, snapshot preload.Snapshot, delegations []MappedDelegation, unit Unit) []MappedDelegation {
	delegated := make(map[string]MappedDelegation, len(delegations))
	for _, d := range delegations {
		delegated[d.Validator.ValidatorAddress] = d
	}

	all := make([]MappedDelegation, 0, len(snapshot.Validators))
	for _, validator := range snapshot.Validators {
		record, ok := delegated[validator.ValidatorAddress]
		if !ok {
			record = MappedDelegation{
				FormattedAmount:         unit.Format(0),
				FormattedPendingRewards: unit.Format(0),
			}
		}
		// Snapshot metadata is authoritative even for existing delegations
		record.Validator = validator
		record.Rank = validator.Rank
		all = append(all, record)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Rank < all[j].Rank
	})
	return Filter(all, query)
}

// findByAddress locates a record by exact validator address
func findByAddress(records []MappedDelegation, address string) (MappedDelegation, bool) {
	for _, record := range records {
		if record.Validator.ValidatorAddress == address {
			return record, true
		}
	}
	return MappedDelegation{}, false
}
