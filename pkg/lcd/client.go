package lcd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Client represents a Cosmos-SDK LCD (light client daemon) REST API client
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new LCD API client with the given HTTP client and base URL
func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// ValidatorsRequest represents parameters for listing bonded validators
type ValidatorsRequest struct {
	Status string // bond status filter, e.g. "BOND_STATUS_BONDED"
	Limit  uint64 // page size; 0 means server default
}

// Validator represents a validator as returned by the staking module
type Validator struct {
	OperatorAddress string `json:"operator_address"`
	Description     struct {
		Moniker string `json:"moniker"`
	} `json:"description"`
	Tokens     string `json:"tokens"`
	Commission struct {
		CommissionRates struct {
			Rate string `json:"rate"`
		} `json:"commission_rates"`
	} `json:"commission"`
}

type validatorsResponse struct {
	Validators []Validator `json:"validators"`
}

// GetValidators retrieves the validator set from the staking module endpoint
func (c *Client) GetValidators(ctx context.Context, req ValidatorsRequest) ([]Validator, error) {
	endpoint := fmt.Sprintf("%s/cosmos/staking/v1beta1/validators", c.baseURL)

	query := url.Values{}
	if req.Status != "" {
		query.Set("status", req.Status)
	}
	if req.Limit > 0 {
		query.Set("pagination.limit", strconv.FormatUint(req.Limit, 10))
	}
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload validatorsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return payload.Validators, nil
}
