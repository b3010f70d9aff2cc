package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/screwyprof/stakeview/pkg/httpkit"
	"github.com/screwyprof/stakeview/staking"
	"github.com/screwyprof/stakeview/web/api"
	"github.com/screwyprof/stakeview/web/handler/bind"
)

const GetValidatorsRoute = http.MethodGet + " " + "/staking/validators"

// Sentinel errors
var (
	ErrQueryFailed = errors.New("failed to query validators")
)

type StakingGetValidators struct {
	finder staking.ValidatorsFinder
}

func NewStakingGetValidators(finder staking.ValidatorsFinder) *StakingGetValidators {
	return &StakingGetValidators{
		finder: finder,
	}
}

func (h *StakingGetValidators) AddRoutes(m *http.ServeMux) {
	m.Handle(GetValidatorsRoute, httpkit.HandlerFunc(h.GetValidators))
}

func (h *StakingGetValidators) GetValidators(w http.ResponseWriter, r *http.Request) http.HandlerFunc {
	// Parse query parameters using bind layer
	req, err := bind.GetValidatorsRequest(r)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	// Create domain criteria with validation
	criteria, err := staking.NewValidatorsCriteria(req.Query, req.Page, req.PerPage)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	// Query validators
	page, err := h.finder.FindValidators(r.Context(), criteria)
	if err != nil {
		return httpkit.JsonError(api.InternalServerError(fmt.Errorf("%w: %w", ErrQueryFailed, err)))
	}

	// Build GitHub-style Link header for navigation
	if linkHeader := buildPaginationLinks(page, r.URL); linkHeader != "" {
		w.Header().Set("Link", linkHeader)
	}

	// Return JSON response
	resp := bind.GetValidatorsResponse(page.Validators)
	return httpkit.JSON(resp)
}

// buildPaginationLinks creates GitHub-style Link header for pagination navigation.
// rel="first"/"last" are intentionally omitted: first is redundant and last
// would require counting the whole filtered set.
func buildPaginationLinks(page *staking.ValidatorsPage, baseURL *url.URL) string {
	var links []string

	// Build base URL with existing query params (like the q filter)
	u := *baseURL
	query := u.Query()

	// Previous page link
	if page.HasPrevious() {
		query.Set("page", fmt.Sprintf("%d", page.Number-1))
		query.Set("per_page", fmt.Sprintf("%d", page.Size))
		u.RawQuery = query.Encode()
		links = append(links, fmt.Sprintf(`<%s>; rel="prev"`, u.String()))
	}

	// Next page link (only if we know there are more pages)
	if page.HasNext() {
		query.Set("page", fmt.Sprintf("%d", page.Number+1))
		query.Set("per_page", fmt.Sprintf("%d", page.Size))
		u.RawQuery = query.Encode()
		links = append(links, fmt.Sprintf(`<%s>; rel="next"`, u.String()))
	}

	return strings.Join(links, ", ")
}
