package state

import (
	"fmt"

	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
)

// RetrieveChain returns a copy of the full chain in order.
func (s *State) RetrieveChain() []ledger.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chain := make([]ledger.Block, len(s.chain))
	copy(chain, s.chain)
	return chain
}

// RetrieveLatestBlock returns a copy of the current chain tip.
func (s *State) RetrieveLatestBlock() ledger.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain[len(s.chain)-1]
}

// Height returns the current length of the chain.
func (s *State) Height() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.chain)
}

// ValidateLocalChain runs the chain integrity checks against the local
// chain. A healthy node always passes; a failure indicates corruption.
func (s *State) ValidateLocalChain() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ledger.ValidateChain(s.chain, s.genesis.Difficulty)
}

// ValidateCandidateChain runs the chain integrity checks against a chain
// received from a peer.
func (s *State) ValidateCandidateChain(chain []ledger.Block) error {
	if err := ledger.ValidateChain(chain, s.genesis.Difficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidChain, err)
	}

	return nil
}

// ReplaceChain atomically swaps the local chain for a validated candidate
// that is strictly longer. Pending transactions the new chain has already
// confirmed are dropped from the mempool; the rest stay pending. This
// reconciliation is best effort, a replaced chain can invalidate what
// remains in the pool and those transactions fail balance checks later.
func (s *State) ReplaceChain(candidate []ledger.Block) error {
	if err := s.ValidateCandidateChain(candidate); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Ties keep the local chain so resolution is stable across nodes.
	if len(candidate) <= len(s.chain) {
		return ErrNotLongerChain
	}

	confirmed := make(map[ledger.Tx]struct{})
	for _, block := range candidate {
		for _, tx := range block.Transactions {
			confirmed[tx] = struct{}{}
		}
	}

	for _, tx := range s.mempool.Copy() {
		if _, exists := confirmed[tx]; exists {
			s.mempool.Delete(tx)
		}
	}

	oldLength := len(s.chain)

	chain := make([]ledger.Block, len(candidate))
	copy(chain, candidate)
	s.chain = chain

	s.evHandler("state: ReplaceChain: chain replaced: length %d -> %d", oldLength, len(chain))

	return nil
}
