package staking

// Selector is a query selector over the validator list: filterable options plus
// a currently selected delegation. Options and value are recomputed
// synchronously whenever the query changes, so no stale state is ever exposed.
type Selector struct {
	draft     TransactionDraft
	delegated []MappedDelegation
	all       []MappedDelegation

	query   string
	options []MappedDelegation
	value   *MappedDelegation
}

// SelectDelegation builds a Selector for the account and its transaction draft.
// The full validator list and the account's mapped delegations are derived from
// the current preload snapshot; rebuild the selector when either input changes.
func SelectDelegation(account Account, draft TransactionDraft, mapper *Mapper) (*Selector, error) {
	delegated, err := mapper.MapDelegations(account, draft.Mode)
	if err != nil {
		return nil, err
	}

	s := &Selector{
		draft:     draft,
		delegated: delegated,
		all:       SortedValidators("", mapper.store.CurrentData(), delegated, account.Unit),
	}
	s.recompute()
	return s, nil
}

// SetQuery updates the filter query and recomputes options and value.
// Setting the same query twice yields identical results.
func (s *Selector) SetQuery(query string) {
	s.query = query
	s.recompute()
}

// Query returns the current filter query
func (s *Selector) Query() string {
	return s.query
}

// Options returns the current filtered, sorted option list
func (s *Selector) Options() []MappedDelegation {
	return s.options
}

// Value returns the currently selected delegation, or nil when nothing
// matches. An empty selection is a normal state the UI renders explicitly.
func (s *Selector) Value() *MappedDelegation {
	return s.value
}

// recompute re-derives options and value from the current inputs.
//
// Value precedence:
//  1. redelegate with a source validator set: the delegation to that validator
//     (nil when the account does not delegate to it, never a guessed fallback)
//  2. the draft already lists validators: the record for the first listed address
//  3. the first entry of the filtered options, or nil when options is empty
func (s *Selector) recompute() {
	s.options = FilterAndSort(s.all, s.query)

	if s.draft.Mode == ModeRedelegate && s.draft.SourceValidator != "" {
		if record, ok := findByAddress(s.delegated, s.draft.SourceValidator); ok {
			s.value = &record
		} else {
			s.value = nil
		}
		return
	}

	if len(s.draft.Validators) > 0 {
		first := s.draft.Validators[0].Address
		if record, ok := findByAddress(s.delegated, first); ok {
			s.value = &record
			return
		}
		if record, ok := findByAddress(s.all, first); ok {
			s.value = &record
			return
		}
		s.value = nil
		return
	}

	if len(s.options) > 0 {
		record := s.options[0]
		s.value = &record
		return
	}
	s.value = nil
}
