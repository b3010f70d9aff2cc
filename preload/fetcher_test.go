package preload_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/stakeview/pkg/lcd"
	"github.com/screwyprof/stakeview/preload"
)

func TestValidatorFetcher(t *testing.T) {
	t.Parallel()

	t.Run("it ranks validators by bonded tokens descending", func(t *testing.T) {
		t.Parallel()

		// Arrange
		client := stubClient{validators: []lcd.Validator{
			lcdValidator("cosmosvaloper1certus", "Certus One", "100", "0.10"),
			lcdValidator("cosmosvaloper1nodeasy", "Nodeasy.com", "300", "0.05"),
			lcdValidator("cosmosvaloper1figment", "Figment", "200", "0.08"),
		}}
		fetcher := preload.NewValidatorFetcher(client, 500)

		// Act
		snapshot, err := fetcher.FetchSnapshot(context.Background(), "cosmos")

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshot.Validators, 3)

		assert.Equal(t, "Nodeasy.com", snapshot.Validators[0].Name)
		assert.Equal(t, 1, snapshot.Validators[0].Rank)
		assert.Equal(t, "Figment", snapshot.Validators[1].Name)
		assert.Equal(t, 2, snapshot.Validators[1].Rank)
		assert.Equal(t, "Certus One", snapshot.Validators[2].Name)
		assert.Equal(t, 3, snapshot.Validators[2].Rank)
	})

	t.Run("it derives voting power as the share of total bonded stake", func(t *testing.T) {
		t.Parallel()

		// Arrange
		client := stubClient{validators: []lcd.Validator{
			lcdValidator("cosmosvaloper1nodeasy", "Nodeasy.com", "750", "0.05"),
			lcdValidator("cosmosvaloper1certus", "Certus One", "250", "0.10"),
		}}
		fetcher := preload.NewValidatorFetcher(client, 500)

		// Act
		snapshot, err := fetcher.FetchSnapshot(context.Background(), "cosmos")

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshot.Validators, 2)

		assert.InDelta(t, 0.75, snapshot.Validators[0].VotingPower, 1e-9)
		assert.InDelta(t, 0.25, snapshot.Validators[1].VotingPower, 1e-9)
		assert.InDelta(t, 0.05, snapshot.Validators[0].Commission, 1e-9)
	})

	t.Run("it skips validators with unparseable token balances", func(t *testing.T) {
		t.Parallel()

		// Arrange
		client := stubClient{validators: []lcd.Validator{
			lcdValidator("cosmosvaloper1broken", "Broken", "not-a-number", "0.10"),
			lcdValidator("cosmosvaloper1nodeasy", "Nodeasy.com", "100", "0.05"),
		}}
		fetcher := preload.NewValidatorFetcher(client, 500)

		// Act
		snapshot, err := fetcher.FetchSnapshot(context.Background(), "cosmos")

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshot.Validators, 1)
		assert.Equal(t, "cosmosvaloper1nodeasy", snapshot.Validators[0].ValidatorAddress)
	})

	t.Run("it defaults an unparseable commission rate to zero", func(t *testing.T) {
		t.Parallel()

		// Arrange
		client := stubClient{validators: []lcd.Validator{
			lcdValidator("cosmosvaloper1nodeasy", "Nodeasy.com", "100", "garbage"),
		}}
		fetcher := preload.NewValidatorFetcher(client, 500)

		// Act
		snapshot, err := fetcher.FetchSnapshot(context.Background(), "cosmos")

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshot.Validators, 1)
		assert.Zero(t, snapshot.Validators[0].Commission)
	})

	t.Run("it requests only bonded validators up to the configured limit", func(t *testing.T) {
		t.Parallel()

		// Arrange
		client := &capturingClient{}
		fetcher := preload.NewValidatorFetcher(client, 250)

		// Act
		_, err := fetcher.FetchSnapshot(context.Background(), "cosmos")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, preload.BondedStatus, client.req.Status)
		assert.Equal(t, uint64(250), client.req.Limit)
	})

	t.Run("it surfaces client failures", func(t *testing.T) {
		t.Parallel()

		// Arrange
		clientErr := errors.New("lcd unavailable")
		fetcher := preload.NewValidatorFetcher(stubClient{err: clientErr}, 500)

		// Act
		_, err := fetcher.FetchSnapshot(context.Background(), "cosmos")

		// Assert
		require.ErrorIs(t, err, clientErr)
		assert.ErrorContains(t, err, "cosmos")
	})
}

// Test helpers

type stubClient struct {
	validators []lcd.Validator
	err        error
}

func (c stubClient) GetValidators(context.Context, lcd.ValidatorsRequest) ([]lcd.Validator, error) {
	return c.validators, c.err
}

type capturingClient struct {
	req lcd.ValidatorsRequest
}

func (c *capturingClient) GetValidators(_ context.Context, req lcd.ValidatorsRequest) ([]lcd.Validator, error) {
	c.req = req
	return nil, nil
}

func lcdValidator(address, moniker, tokens, rate string) lcd.Validator {
	var v lcd.Validator
	v.OperatorAddress = address
	v.Description.Moniker = moniker
	v.Tokens = tokens
	v.Commission.CommissionRates.Rate = rate
	return v
}
