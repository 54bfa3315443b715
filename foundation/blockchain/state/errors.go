package state

import "errors"

// ErrNoTransactions is returned when a block is requested to be mined and
// there are no transactions in the mempool.
var ErrNoTransactions = errors.New("no transactions in mempool")

// ErrInsufficientBalance is returned when a submitted transaction spends
// more than the sender has available, counting debits already pending in
// the mempool.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInvalidChain is returned when a candidate chain fails the integrity
// checks and cannot be adopted.
var ErrInvalidChain = errors.New("invalid chain")

// ErrNotLongerChain is returned when a candidate chain is valid but not
// strictly longer than the local chain. Ties keep the local chain.
var ErrNotLongerChain = errors.New("candidate chain is not longer than the local chain")
