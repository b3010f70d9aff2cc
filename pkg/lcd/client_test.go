package lcd_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/stakeview/pkg/lcd"
)

func TestLCDClientParsesSuccessfulResponse(t *testing.T) {
	t.Parallel()

	// Arrange
	expected := []lcd.Validator{
		testValidator("cosmosvaloper1abc", "Nodeasy.com", "6663217", "0.03"),
		testValidator("cosmosvaloper1def", "Certus One", "7837850", "0.10"),
	}

	server := httptest.NewServer(validatorsHandler(t, expected))
	defer server.Close()

	client := lcd.NewClient(server.Client(), server.URL)

	// Act
	validators, err := client.GetValidators(t.Context(), lcd.ValidatorsRequest{
		Status: "BOND_STATUS_BONDED",
		Limit:  200,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, validators, 2)
	assert.Equal(t, expected, validators)
}

func TestLCDClientSendsStatusAndLimit(t *testing.T) {
	t.Parallel()

	// Arrange
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"status":           r.URL.Query().Get("status"),
			"pagination.limit": r.URL.Query().Get("pagination.limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"validators":[]}`))
	}))
	defer server.Close()

	client := lcd.NewClient(server.Client(), server.URL)

	// Act
	_, err := client.GetValidators(t.Context(), lcd.ValidatorsRequest{
		Status: "BOND_STATUS_BONDED",
		Limit:  50,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "BOND_STATUS_BONDED", gotQuery["status"])
	assert.Equal(t, "50", gotQuery["pagination.limit"])
}

func TestLCDClientHandlesErrorStatus(t *testing.T) {
	t.Parallel()

	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"node unavailable"}`))
	}))
	defer server.Close()

	client := lcd.NewClient(server.Client(), server.URL)

	// Act
	validators, err := client.GetValidators(t.Context(), lcd.ValidatorsRequest{})

	// Assert
	require.Error(t, err)
	assert.Nil(t, validators)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
}

func TestLCDClientHandlesMalformedResponse(t *testing.T) {
	t.Parallel()

	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"validators":`))
	}))
	defer server.Close()

	client := lcd.NewClient(server.Client(), server.URL)

	// Act
	_, err := client.GetValidators(t.Context(), lcd.ValidatorsRequest{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

// Test helpers

func testValidator(address, moniker, tokens, rate string) lcd.Validator {
	var v lcd.Validator
	v.OperatorAddress = address
	v.Description.Moniker = moniker
	v.Tokens = tokens
	v.Commission.CommissionRates.Rate = rate
	return v
}

func validatorsHandler(t *testing.T, validators []lcd.Validator) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{"validators": validators})
		require.NoError(t, err)
	}
}
