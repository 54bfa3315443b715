package state

import (
	"context"

	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
)

// MineNewBlock mines the next block in the chain from the transactions
// waiting in the mempool. The lock is only held to snapshot the chain tip
// and to commit the result, never during the nonce search. If the tip
// advances while the search runs, the stale block is discarded and the
// search starts over on the new tip.
func (s *State) MineNewBlock(ctx context.Context) (ledger.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	for {
		if s.mempool.Count() == 0 {
			return ledger.Block{}, ErrNoTransactions
		}

		// Snapshot the tip and the transactions going into this block.
		// Selection is FIFO; whatever doesn't fit stays queued for the
		// next block. The reward transaction is appended to the
		// selection, it never sits in the pool.
		s.mu.RLock()
		parent := s.chain[len(s.chain)-1]
		s.mu.RUnlock()

		picked := s.mempool.PickFront(int(s.genesis.TransPerBlock))

		trans := make([]ledger.Tx, 0, len(picked)+1)
		trans = append(trans, picked...)
		trans = append(trans, ledger.NewRewardTx(s.minerAccountID, s.genesis.MiningReward))

		s.evHandler("state: MineNewBlock: MINING: perform POW: txs[%d]", len(trans))

		block, err := ledger.POW(ctx, s.genesis.Difficulty, parent, trans, s.evHandler)
		if err != nil {
			return ledger.Block{}, err
		}

		// Just check one more time we were not cancelled.
		if ctx.Err() != nil {
			return ledger.Block{}, ctx.Err()
		}

		// Commit the block. If another operation moved the tip while the
		// search was running, the block links to a stale parent and must
		// be thrown away.
		s.mu.Lock()
		if tip := s.chain[len(s.chain)-1]; tip.BlockHash != parent.BlockHash {
			s.mu.Unlock()
			s.evHandler("state: MineNewBlock: MINING: stale tip, discarding block[%d] and retrying", block.Index)
			continue
		}
		s.chain = append(s.chain, block)
		s.mu.Unlock()

		// Remove exactly the transactions that were picked from the pool.
		// The appended reward was never in the pool and the remainder
		// stays queued.
		for _, tx := range picked {
			s.mempool.Delete(tx)
		}

		s.evHandler("state: MineNewBlock: MINING: block[%d] added to chain: hash[%s]", block.Index, block.BlockHash)

		return block, nil
	}
}
