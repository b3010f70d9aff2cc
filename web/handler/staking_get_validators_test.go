package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/stakeview/preload"
	"github.com/screwyprof/stakeview/staking"
	"github.com/screwyprof/stakeview/web/api"
	"github.com/screwyprof/stakeview/web/handler"
)

func TestStakingGetValidators(t *testing.T) {
	t.Parallel()

	t.Run("it returns the rank-ordered validator list", func(t *testing.T) {
		t.Parallel()

		// Arrange
		srv := serverWithValidators(t,
			validatorInfo("cosmosvaloper1nodeasy", "Nodeasy.com", 1),
			validatorInfo("cosmosvaloper1certus", "Certus One", 2),
		)
		defer srv.Close()

		// Act
		resp := getValidators(t, srv, "/staking/validators")

		// Assert
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "Nodeasy.com", resp.Data[0].Name)
		assert.Equal(t, "1", resp.Data[0].Rank)
		assert.Equal(t, "Certus One", resp.Data[1].Name)
	})

	t.Run("it filters validators by query", func(t *testing.T) {
		t.Parallel()

		// Arrange
		srv := serverWithValidators(t,
			validatorInfo("cosmosvaloper1nodeasy", "Nodeasy.com", 1),
			validatorInfo("cosmosvaloper1certus", "Certus One", 2),
		)
		defer srv.Close()

		// Act
		resp := getValidators(t, srv, "/staking/validators?q=nodeasy")

		// Assert
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "cosmosvaloper1nodeasy", resp.Data[0].Address)
	})

	t.Run("it paginates with a next page link", func(t *testing.T) {
		t.Parallel()

		// Arrange
		srv := serverWithValidators(t,
			validatorInfo("cosmosvaloper1a", "A", 1),
			validatorInfo("cosmosvaloper1b", "B", 2),
			validatorInfo("cosmosvaloper1c", "C", 3),
		)
		defer srv.Close()

		// Act
		res, err := srv.Client().Get(srv.URL + "/staking/validators?page=1&per_page=2")

		// Assert
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, res.Header.Get("Link"), `rel="next"`)

		var resp api.ValidatorsResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
		assert.Len(t, resp.Data, 2)
	})

	t.Run("it rejects an invalid per_page parameter", func(t *testing.T) {
		t.Parallel()

		// Arrange
		srv := serverWithValidators(t)
		defer srv.Close()

		// Act
		res, err := srv.Client().Get(srv.URL + "/staking/validators?per_page=999")

		// Assert
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("it hides finder failures behind a 500", func(t *testing.T) {
		t.Parallel()

		// Arrange
		mux := http.NewServeMux()
		handler.NewStakingGetValidators(failingFinder{}).AddRoutes(mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		// Act
		res, err := srv.Client().Get(srv.URL + "/staking/validators")

		// Assert
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	})
}

// Test helpers

type failingFinder struct{}

func (failingFinder) FindValidators(context.Context, staking.ValidatorsCriteria) (*staking.ValidatorsPage, error) {
	return nil, errors.New("snapshot unavailable")
}

func validatorInfo(address, name string, rank int) preload.ValidatorInfo {
	return preload.ValidatorInfo{
		ValidatorAddress: address,
		Name:             name,
		Rank:             rank,
	}
}

func serverWithValidators(t *testing.T, validators ...preload.ValidatorInfo) *httptest.Server {
	t.Helper()

	cache := preload.NewReadCache(nil)
	store := preload.NewDataStore(cache, "cosmos", preload.Snapshot{Validators: validators})
	finder := staking.NewBrowser(store, staking.Unit{Code: "ATOM", Magnitude: 6})

	mux := http.NewServeMux()
	handler.NewStakingGetValidators(finder).AddRoutes(mux)
	return httptest.NewServer(mux)
}

func getValidators(t *testing.T, srv *httptest.Server, path string) api.ValidatorsResponse {
	t.Helper()

	res, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var resp api.ValidatorsResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	return resp
}
