package bind

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/screwyprof/stakeview/staking"
	"github.com/screwyprof/stakeview/web/api"
)

// Sentinel errors for request binding
var (
	ErrInvalidPage    = errors.New("invalid page parameter")
	ErrInvalidPerPage = errors.New("invalid per_page parameter")

	// Specific page validation errors
	ErrPageNotNumeric  = errors.New("page must be numeric")
	ErrPageNotPositive = errors.New("page must be positive")

	// Specific per_page validation errors
	ErrPerPageNotNumeric  = errors.New("per_page must be numeric")
	ErrPerPageNotPositive = errors.New("per_page must be positive")
	ErrPerPageTooLarge    = errors.New("per_page must be between 1 and 100")
)

// GetValidatorsRequest binds HTTP request to ValidatorsRequest with defaults
func GetValidatorsRequest(r *http.Request) (api.ValidatorsRequest, error) {
	req := api.ValidatorsRequest{
		Query:   "", // empty means no filtering
		Page:    staking.DefaultPage,
		PerPage: staking.DefaultPerPage,
	}

	query := r.URL.Query()

	req.Query = query.Get("q")

	// Parse page parameter
	if pageParam := query.Get("page"); pageParam != "" {
		page, err := parsePageNumber(pageParam)
		if err != nil {
			return req, fmt.Errorf("%w: %w", ErrInvalidPage, err)
		}
		req.Page = page
	}

	// Parse per_page parameter
	if perPageParam := query.Get("per_page"); perPageParam != "" {
		perPage, err := parsePerPageLimit(perPageParam)
		if err != nil {
			return req, fmt.Errorf("%w: %w", ErrInvalidPerPage, err)
		}
		req.PerPage = perPage
	}

	return req, nil
}

// parsePageNumber validates that the page parameter is a positive integer
func parsePageNumber(pageParam string) (uint64, error) {
	page, err := strconv.ParseUint(pageParam, 10, 64)
	if err != nil {
		return 0, ErrPageNotNumeric
	}

	if page == 0 {
		return 0, ErrPageNotPositive
	}
	return page, nil
}

// parsePerPageLimit validates that the per_page parameter is within acceptable limits
func parsePerPageLimit(perPageParam string) (uint64, error) {
	perPage, err := strconv.ParseUint(perPageParam, 10, 64)
	if err != nil {
		return 0, ErrPerPageNotNumeric
	}

	if perPage == 0 {
		return 0, ErrPerPageNotPositive
	}

	if perPage > staking.MaxPerPage {
		return 0, ErrPerPageTooLarge
	}
	return perPage, nil
}

// GetValidatorsResponse binds domain validator records to the API response format
func GetValidatorsResponse(validators []staking.MappedDelegation) api.ValidatorsResponse {
	apiValidators := make([]api.Validator, len(validators))
	for i, v := range validators {
		apiValidators[i] = api.Validator{
			Address:     v.Validator.ValidatorAddress,
			Name:        v.Validator.Name,
			Rank:        strconv.Itoa(v.Validator.Rank),
			VotingPower: strconv.FormatFloat(v.Validator.VotingPower, 'f', 6, 64),
			Commission:  strconv.FormatFloat(v.Validator.Commission, 'f', 2, 64),
			Delegated:   v.FormattedAmount,
		}
	}

	return api.ValidatorsResponse{
		Data: apiValidators,
	}
}
