package api

// ValidatorsRequest represents the query parameters for GET /staking/validators
type ValidatorsRequest struct {
	Query   string `query:"q"`        // Optional free-text filter over name and address
	Page    uint64 `query:"page"`     // Page number for pagination (default: 1)
	PerPage uint64 `query:"per_page"` // Number of items per page (default: 50, max: 100)
}

// Validator represents a single validator in the API response
type Validator struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Rank        string `json:"rank"`
	VotingPower string `json:"voting_power"`
	Commission  string `json:"commission"`
	Delegated   string `json:"delegated"`
}

// ValidatorsResponse represents the API response format for GET /staking/validators
type ValidatorsResponse struct {
	Data []Validator `json:"data"`
}
