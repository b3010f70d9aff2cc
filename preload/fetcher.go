package preload

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/screwyprof/stakeview/pkg/lcd"
)

// BondedStatus is the staking-module filter for validators accepting delegations
const BondedStatus = "BOND_STATUS_BONDED"

// Client fetches validators from the chain REST API
// --------------------------------------------------
type Client interface {
	GetValidators(ctx context.Context, req lcd.ValidatorsRequest) ([]lcd.Validator, error)
}

// ValidatorFetcher is the production Fetcher: it pulls the bonded validator set
// from an LCD endpoint and derives ranks and voting-power shares.
type ValidatorFetcher struct {
	client Client
	limit  uint64
	now    func() time.Time
}

// NewValidatorFetcher constructs a ValidatorFetcher over the given API client
func NewValidatorFetcher(client Client, limit uint64) *ValidatorFetcher {
	return &ValidatorFetcher{
		client: client,
		limit:  limit,
		now:    time.Now,
	}
}

// FetchSnapshot retrieves the bonded validator set and converts it into a
// rank-ordered snapshot. Validators with unparseable token balances are skipped.
func (f *ValidatorFetcher) FetchSnapshot(ctx context.Context, network NetworkID) (Snapshot, error) {
	validators, err := f.client.GetValidators(ctx, lcd.ValidatorsRequest{
		Status: BondedStatus,
		Limit:  f.limit,
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetching validators for %s: %w", network, err)
	}

	return Snapshot{
		Validators: rankValidators(validators),
		FetchedAt:  f.now(),
	}, nil
}

type rankedValidator struct {
	info   ValidatorInfo
	tokens decimal.Decimal
}

// rankValidators sorts validators by bonded tokens descending, assigns ranks by
// position and voting power as each validator's share of the total bonded stake.
func rankValidators(validators []lcd.Validator) []ValidatorInfo {
	ranked := make([]rankedValidator, 0, len(validators))
	totalBonded := decimal.Zero

	for _, v := range validators {
		tokens, err := decimal.NewFromString(v.Tokens)
		if err != nil {
			continue
		}
		commission, err := decimal.NewFromString(v.Commission.CommissionRates.Rate)
		if err != nil {
			commission = decimal.Zero
		}

		totalBonded = totalBonded.Add(tokens)
		ranked = append(ranked, rankedValidator{
			info: ValidatorInfo{
				ValidatorAddress: v.OperatorAddress,
				Name:             v.Description.Moniker,
				Commission:       commission.InexactFloat64(),
			},
			tokens: tokens,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].tokens.GreaterThan(ranked[j].tokens)
	})

	infos := make([]ValidatorInfo, len(ranked))
	for i, r := range ranked {
		info := r.info
		info.Rank = i + 1
		if totalBonded.IsPositive() {
			info.VotingPower = r.tokens.Div(totalBonded).InexactFloat64()
		}
		infos[i] = info
	}
	return infos
}
