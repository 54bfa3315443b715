package state

import (
	"fmt"

	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
)

// SubmitTransaction validates a transaction against the confirmed chain
// plus the sender's debits already pending in the mempool, then adds it to
// the pool. The returned value is the number of the block the transaction
// is expected to be mined into.
func (s *State) SubmitTransaction(tx ledger.Tx) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Reward transactions are exempt from balance checks. Everyone else
	// can only spend what the confirmed chain says they have, minus what
	// they already promised in the pool. This is what prevents a double
	// spend inside a single pool.
	if !tx.IsReward() {
		balance := balanceOf(s.chain, tx.Sender)
		pending := int64(s.mempool.PendingDebit(tx.Sender))

		available := balance - pending
		if available < 0 {
			available = 0
		}

		if int64(tx.Amount) > available {
			return 0, fmt.Errorf("%w: account %s has %d available, transaction needs %d", ErrInsufficientBalance, tx.Sender, available, tx.Amount)
		}
	}

	s.mempool.Add(tx)

	nextBlock := s.chain[len(s.chain)-1].Index + 1
	s.evHandler("state: SubmitTransaction: tx[%s] accepted for block[%d]", tx, nextBlock)

	return nextBlock, nil
}

// RetrieveMempool returns a copy of the uncommitted transactions in
// FIFO order.
func (s *State) RetrieveMempool() []ledger.Tx {
	return s.mempool.Copy()
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// BalanceOf replays every confirmed transaction in the chain and returns
// the resulting balance for the account. The call is side effect free.
func (s *State) BalanceOf(account ledger.AccountID) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return balanceOf(s.chain, account)
}

// balanceOf computes credits minus debits across the specified chain.
// Reward transactions contribute only as credits, never as debits.
func balanceOf(chain []ledger.Block, account ledger.AccountID) int64 {
	var balance int64

	for _, block := range chain {
		for _, tx := range block.Transactions {
			if tx.Recipient == account {
				balance += int64(tx.Amount)
			}
			if tx.Sender == account && !tx.IsReward() {
				balance -= int64(tx.Amount)
			}
		}
	}

	return balance
}
