// Package mempool maintains the queue of uncommitted transactions.
package mempool

import (
	"sync"

	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
)

// Mempool represents the ordered set of pending transactions. Transactions
// are kept in submission order and selected FIFO when a block is mined.
type Mempool struct {
	mu   sync.RWMutex
	pool []ledger.Tx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the back of the pool and returns the
// resulting pool length.
func (mp *Mempool) Add(tx ledger.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)
	return len(mp.pool)
}

// Copy returns a copy of the pool in FIFO order.
func (mp *Mempool) Copy() []ledger.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	pool := make([]ledger.Tx, len(mp.pool))
	copy(pool, mp.pool)
	return pool
}

// PickFront returns a copy of up to howMany transactions from the front of
// the pool. The transactions are not removed; the caller deletes them once
// they are confirmed in a block.
func (mp *Mempool) PickFront(howMany int) []ledger.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	if howMany > len(mp.pool) {
		howMany = len(mp.pool)
	}

	trans := make([]ledger.Tx, howMany)
	copy(trans, mp.pool[:howMany])
	return trans
}

// Delete removes the first pool entry equal to the specified transaction.
// Deleting a transaction that is not in the pool is a no-op.
func (mp *Mempool) Delete(tx ledger.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for i, ptx := range mp.pool {
		if ptx == tx {
			mp.pool = append(mp.pool[:i], mp.pool[i+1:]...)
			return
		}
	}
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// PendingDebit sums the amounts the specified account has already
// committed to spend across the pool. Reward transactions never debit.
func (mp *Mempool) PendingDebit(account ledger.AccountID) uint64 {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var total uint64
	for _, tx := range mp.pool {
		if tx.Sender == account && !tx.IsReward() {
			total += tx.Amount
		}
	}
	return total
}
