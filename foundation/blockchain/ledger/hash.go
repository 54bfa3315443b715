// Package ledger implements the data types that make up the blockchain:
// transactions, blocks and the integrity rules that bind a chain together.
package ledger

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroHash represents a hash code of zeros. It is the previous hash of the
// genesis block.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// hashLength is the length of the hex encoded hash including the 0x prefix.
const hashLength = 66

// Hash returns a unique hash for the value. The serialization is canonical:
// field order is fixed by the type declarations, so the same logical content
// always produces the same hash on every node.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// IsHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func IsHashSolved(difficulty uint16, hash string) bool {
	const match = "0x0000000000000000000000000000000000000000000000000000000000000000"

	if len(hash) != hashLength {
		return false
	}

	return hash[:2+int(difficulty)] == match[:2+int(difficulty)]
}
