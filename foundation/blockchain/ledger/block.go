package ledger

import (
	"context"
	"time"
)

// Block represents a group of transactions mined into the chain. A block
// is immutable once mined; the chain only ever grows by appending or is
// replaced wholesale during consensus resolution.
type Block struct {
	Index         uint64 `json:"index"`
	TimeStamp     uint64 `json:"timestamp"`
	Transactions  []Tx   `json:"transactions"`
	PrevBlockHash string `json:"previous_hash"`
	Nonce         uint64 `json:"nonce"`
	BlockHash     string `json:"hash"`
}

// Hash computes the hash over the canonical block fields. The stored hash
// is not part of the calculation so the stored value can always be checked
// against a recomputation.
func (b Block) Hash() string {
	fields := struct {
		Index         uint64 `json:"index"`
		TimeStamp     uint64 `json:"timestamp"`
		Transactions  []Tx   `json:"transactions"`
		PrevBlockHash string `json:"previous_hash"`
		Nonce         uint64 `json:"nonce"`
	}{
		Index:         b.Index,
		TimeStamp:     b.TimeStamp,
		Transactions:  b.Transactions,
		PrevBlockHash: b.PrevBlockHash,
		Nonce:         b.Nonce,
	}

	return Hash(fields)
}

// POW constructs a candidate block on top of the specified parent and
// performs the proof of work search for a nonce that solves the
// difficulty puzzle. The search runs until a solution is found or the
// context is cancelled.
func POW(ctx context.Context, difficulty uint16, parent Block, trans []Tx, ev func(v string, args ...any)) (Block, error) {
	b := Block{
		Index:         parent.Index + 1,
		TimeStamp:     uint64(time.Now().UTC().Unix()),
		Transactions:  trans,
		PrevBlockHash: parent.BlockHash,
		Nonce:         0,
	}

	if err := b.performPOW(ctx, difficulty, ev); err != nil {
		return Block{}, err
	}

	return b, nil
}

// performPOW does the work of mining to find a valid hash for the block.
// Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, difficulty uint16, ev func(v string, args ...any)) error {
	ev("ledger: performPOW: MINING: block[%d]: started", b.Index)
	defer ev("ledger: performPOW: MINING: block[%d]: completed", b.Index)

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("ledger: performPOW: MINING: attempts[%d]", attempts)
		}

		// Check for a cancellation request on every pass so the search
		// never outlives its caller.
		if ctx.Err() != nil {
			ev("ledger: performPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		hash := b.Hash()
		if !IsHashSolved(difficulty, hash) {
			b.Nonce++
			continue
		}

		b.BlockHash = hash

		ev("ledger: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.PrevBlockHash, hash)
		ev("ledger: performPOW: MINING: attempts[%d]", attempts)

		return nil
	}
}
