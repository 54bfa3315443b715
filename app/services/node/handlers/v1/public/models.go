package public

import (
	"github.com/lohithgsk/blockchain/business/sys/validate"
	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
)

// newTx is the payload for submitting a transaction.
type newTx struct {
	Sender    string `json:"sender" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Amount    uint64 `json:"amount" validate:"required,gt=0"`
}

// Validate checks the submission carries the fields a transaction requires.
func (tx newTx) Validate() error {
	return validate.Check(tx)
}

// submitResult confirms a transaction was accepted into the pool.
type submitResult struct {
	Message     string    `json:"message"`
	Block       uint64    `json:"block"`
	Transaction ledger.Tx `json:"transaction"`
}

// chainInfo carries the full chain and its length.
type chainInfo struct {
	Chain  []ledger.Block `json:"chain"`
	Length int            `json:"length"`
}

// minedBlock reports the block produced by a mining call.
type minedBlock struct {
	Message    string       `json:"message"`
	Block      ledger.Block `json:"block"`
	MiningTime string       `json:"mining_time"`
}

// balanceInfo reports the replayed balance for one account.
type balanceInfo struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

// registerPeers is the payload for registering peer nodes.
type registerPeers struct {
	Peers []string `json:"peers" validate:"required,min=1"`
}

// Validate checks the registration carries at least one peer URL.
func (rp registerPeers) Validate() error {
	return validate.Check(rp)
}

// registerResult reports which peers could and could not be registered.
type registerResult struct {
	Message    string   `json:"message"`
	Registered []string `json:"registered"`
	Failed     []string `json:"failed"`
	KnownPeers []string `json:"known_peers"`
}

// syncInfo reports the outcome of a consensus pass.
type syncInfo struct {
	Message      string `json:"message"`
	Replaced     bool   `json:"replaced"`
	NewLength    int    `json:"new_length"`
	PeersChecked int    `json:"peers_checked"`
	PeersFailed  int    `json:"peers_failed"`
}

// statusInfo reports the health of this node.
type statusInfo struct {
	NodeID          string            `json:"node_id"`
	Status          string            `json:"status"`
	ChainLength     int               `json:"chain_length"`
	ChainValid      bool              `json:"chain_valid"`
	LatestBlockHash string            `json:"latest_block_hash"`
	PendingCount    int               `json:"pending_count"`
	PeerCount       int               `json:"peer_count"`
	Difficulty      uint16            `json:"difficulty"`
	MiningReward    uint64            `json:"mining_reward"`
	PeerStatus      map[string]string `json:"peer_status"`
}
