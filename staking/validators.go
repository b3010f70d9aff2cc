package staking

import (
	"context"
	"errors"
	"fmt"

	"github.com/screwyprof/stakeview/preload"
)

// Default pagination values
const (
	DefaultPage    = 1   // Default to first page
	DefaultPerPage = 50  // Default pagination size
	MaxPerPage     = 100 // Maximum items per page
)

// Page represents a page number for pagination
type Page uint64

// PerPage represents items per page for pagination
type PerPage uint64

// Pagination validation errors
var (
	ErrPerPageTooLarge = errors.New("per_page exceeds maximum limit")
)

// ParsePageFromUint64 creates a Page from uint64 with default handling
func ParsePageFromUint64(page uint64) Page {
	// Zero means use default page
	if page == 0 {
		return Page(DefaultPage)
	}
	return Page(page)
}

// ParsePerPageFromUint64 creates a PerPage from uint64 with domain validation
func ParsePerPageFromUint64(perPage uint64) (PerPage, error) {
	// Zero means use default per_page
	if perPage == 0 {
		return PerPage(DefaultPerPage), nil
	}

	if perPage > MaxPerPage {
		return 0, fmt.Errorf("%w: must be between 1 and %d", ErrPerPageTooLarge, MaxPerPage)
	}
	return PerPage(perPage), nil
}

// Uint64 returns the underlying uint64 value
func (p Page) Uint64() uint64 {
	return uint64(p)
}

// Uint64 returns the underlying uint64 value
func (pp PerPage) Uint64() uint64 {
	return uint64(pp)
}

// ValidatorsCriteria specifies criteria for browsing the validator set
type ValidatorsCriteria struct {
	Query string  // Free-text filter over name and address. Empty means no filtering
	Page  Page    // 1-based page number
	Size  PerPage // Items per page
}

// NewValidatorsCriteria creates ValidatorsCriteria from raw values with validation
func NewValidatorsCriteria(query string, page, perPage uint64) (ValidatorsCriteria, error) {
	pp, err := ParsePerPageFromUint64(perPage)
	if err != nil {
		return ValidatorsCriteria{}, err
	}

	return ValidatorsCriteria{
		Query: query,
		Page:  ParsePageFromUint64(page),
		Size:  pp,
	}, nil
}

// ItemsPerPage returns the number of items requested per page
func (c ValidatorsCriteria) ItemsPerPage() uint64 {
	return c.Size.Uint64()
}

// ItemsToSkip returns the number of items to skip for pagination
func (c ValidatorsCriteria) ItemsToSkip() uint64 {
	return (c.Page.Uint64() - 1) * c.Size.Uint64()
}

// ValidatorsPage represents a page of validator results with navigation metadata
type ValidatorsPage struct {
	Validators []MappedDelegation
	HasMore    bool    // True if there are more pages after this one
	Number     Page    // Current page number
	Size       PerPage // Page size
}

// Helper methods for pagination state
func (p *ValidatorsPage) HasNext() bool     { return p.HasMore }
func (p *ValidatorsPage) HasPrevious() bool { return p.Number > 1 }

// ValidatorsFinder defines the interface for browsing validators
type ValidatorsFinder interface {
	FindValidators(ctx context.Context, criteria ValidatorsCriteria) (*ValidatorsPage, error)
}

// Browser implements ValidatorsFinder over the current preload snapshot,
// rank ascending, entirely in memory.
type Browser struct {
	store *preload.DataStore
	unit  Unit
}

// NewBrowser constructs a Browser over the given data store
func NewBrowser(store *preload.DataStore, unit Unit) *Browser {
	return &Browser{store: store, unit: unit}
}

// FindValidators pages through the filtered, rank-ordered validator list
func (b *Browser) FindValidators(ctx context.Context, criteria ValidatorsCriteria) (*ValidatorsPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := SortedValidators(criteria.Query, b.store.CurrentData(), nil, b.unit)

	skip := criteria.ItemsToSkip()
	if skip > uint64(len(all)) {
		skip = uint64(len(all))
	}
	remaining := all[skip:]

	hasMore := uint64(len(remaining)) > criteria.ItemsPerPage()
	if hasMore {
		remaining = remaining[:criteria.ItemsPerPage()]
	}

	return &ValidatorsPage{
		Validators: remaining,
		HasMore:    hasMore,
		Number:     criteria.Page,
		Size:       criteria.Size,
	}, nil
}
