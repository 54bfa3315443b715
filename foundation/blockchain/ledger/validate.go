package ledger

import (
	"errors"
	"fmt"
)

// ValidateChain checks the integrity of a candidate chain. Every block's
// stored hash must match a recomputation over its fields, every non-genesis
// block must link to its predecessor's hash and satisfy the difficulty
// predicate. The genesis block is exempt from the proof of work and
// previous-hash link checks.
func ValidateChain(chain []Block, difficulty uint16) error {
	if len(chain) == 0 {
		return errors.New("chain is empty")
	}

	if chain[0].PrevBlockHash != ZeroHash {
		return fmt.Errorf("genesis previous hash, got %s, exp %s", chain[0].PrevBlockHash, ZeroHash)
	}

	for i, block := range chain {
		if block.Index != uint64(i) {
			return fmt.Errorf("block out of sequence, got %d, exp %d", block.Index, i)
		}

		if hash := block.Hash(); block.BlockHash != hash {
			return fmt.Errorf("block %d stored hash doesn't match a recomputation, got %s, exp %s", i, block.BlockHash, hash)
		}

		if i == 0 {
			continue
		}

		if !IsHashSolved(difficulty, block.BlockHash) {
			return fmt.Errorf("block %d hash doesn't meet difficulty %d: %s", i, difficulty, block.BlockHash)
		}

		if block.PrevBlockHash != chain[i-1].BlockHash {
			return fmt.Errorf("block %d doesn't link to its parent, got %s, exp %s", i, block.PrevBlockHash, chain[i-1].BlockHash)
		}
	}

	return nil
}
