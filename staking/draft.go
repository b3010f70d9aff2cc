package staking

// Mode identifies the staking operation a transaction draft performs
type Mode string

const (
	ModeDelegate    Mode = "delegate"
	ModeRedelegate  Mode = "redelegate"
	ModeUndelegate  Mode = "undelegate"
	ModeClaimReward Mode = "claimReward"
)

// TransactionDraft mirrors the bridge collaborator's in-flight staking
// transaction. Consumed read-only by the selector.
type TransactionDraft struct {
	Mode       Mode
	Validators []DelegationDraft

	// SourceValidator is the validator a redelegation moves stake away from.
	// Empty unless Mode is ModeRedelegate.
	SourceValidator string
}

// DelegationDraft is one validator/amount pair chosen on a draft
type DelegationDraft struct {
	Address string
	Amount  int64
}

// CreateTransaction builds the default transaction draft for an account,
// the way the bridge collaborator would.
func CreateTransaction(_ Account) TransactionDraft {
	return TransactionDraft{Mode: ModeDelegate}
}
