package ledger

import (
	"errors"
	"fmt"
	"time"
)

// RewardAccountID is the sentinel sender used on mining reward
// transactions. Reward transactions are exempt from balance checks and
// only ever credit the recipient.
const RewardAccountID = AccountID("SYSTEM")

// AccountID represents an account address in the system. Addresses are
// opaque strings carrying no cryptographic identity.
type AccountID string

// Tx represents a transfer between two accounts. A transaction is
// immutable once created.
type Tx struct {
	Sender    AccountID `json:"sender"`
	Recipient AccountID `json:"recipient"`
	Amount    uint64    `json:"amount"`
	TimeStamp uint64    `json:"timestamp"`
}

// NewTx constructs a new transaction, rejecting malformed input at the
// boundary so nothing downstream needs to re-check the fields.
func NewTx(sender AccountID, recipient AccountID, amount uint64) (Tx, error) {
	if sender == "" {
		return Tx{}, errors.New("sender is required")
	}
	if recipient == "" {
		return Tx{}, errors.New("recipient is required")
	}
	if sender == recipient {
		return Tx{}, fmt.Errorf("sender and recipient cannot both be %q", sender)
	}
	if amount == 0 {
		return Tx{}, errors.New("amount must be greater than zero")
	}

	tx := Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}

	return tx, nil
}

// NewRewardTx constructs the coinbase style transaction crediting the
// miner of a block.
func NewRewardTx(miner AccountID, reward uint64) Tx {
	return Tx{
		Sender:    RewardAccountID,
		Recipient: miner,
		Amount:    reward,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}
}

// IsReward reports whether the transaction is a mining reward.
func (tx Tx) IsReward() bool {
	return tx.Sender == RewardAccountID
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s -> %s: %d", tx.Sender, tx.Recipient, tx.Amount)
}
