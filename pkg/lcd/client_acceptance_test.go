//go:build acceptance

package lcd_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/stakeview/pkg/lcd"
	"github.com/screwyprof/stakeview/pkg/lcd/testcfg"
)

func TestLCDClientRealAPI(t *testing.T) {
	t.Parallel()

	// Load test configuration from environment
	testCfg := testcfg.New()

	// Arrange
	client := lcd.NewClient(&http.Client{
		Timeout: testCfg.HTTPTimeout,
	}, testCfg.BaseURL)

	// Act - Call the real LCD endpoint for bonded validators
	validators, err := client.GetValidators(t.Context(), lcd.ValidatorsRequest{
		Status: testCfg.Status,
		Limit:  testCfg.Limit,
	})

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, validators)

	for _, v := range validators {
		assert.NotEmpty(t, v.OperatorAddress, "validator should have an operator address")
		assert.NotEmpty(t, v.Tokens, "bonded validator should report tokens")
	}
}
