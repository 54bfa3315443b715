// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"context"
	"sync"

	"github.com/lohithgsk/blockchain/foundation/blockchain/genesis"
	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
	"github.com/lohithgsk/blockchain/foundation/blockchain/mempool"
	"github.com/lohithgsk/blockchain/foundation/blockchain/peer"
)

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for background mining and chain syncing.
type Worker interface {
	Shutdown()
	MineNow(ctx context.Context) (ledger.Block, error)
}

// =============================================================================

// Config represents the configuration required to start the ledger node.
type Config struct {
	MinerAccountID ledger.AccountID
	Host           string
	Genesis        genesis.Genesis
	KnownPeers     *peer.PeerSet
	EvHandler      EventHandler
}

// State manages the blockchain, the pool of pending transactions and the
// set of known peers. The chain and the pool form a single unit of shared
// state; the mutex serializes every operation that mutates either one.
type State struct {
	minerAccountID ledger.AccountID
	host           string
	evHandler      EventHandler

	mu    sync.RWMutex
	chain []ledger.Block

	genesis    genesis.Genesis
	mempool    *mempool.Mempool
	knownPeers *peer.PeerSet

	Worker Worker
}

// New constructs a new ledger state for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Every node starts from the same genesis block so chains grown on
	// different nodes remain comparable.
	gb := newGenesisBlock(cfg.Genesis)

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	state := State{
		minerAccountID: cfg.MinerAccountID,
		host:           cfg.Host,
		evHandler:      ev,

		chain:      []ledger.Block{gb},
		genesis:    cfg.Genesis,
		mempool:    mempool.New(),
		knownPeers: knownPeers,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all background ledger activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// newGenesisBlock constructs the fixed first block of the chain. The
// genesis block carries no transactions, a zero nonce and is exempt from
// the proof of work predicate. Its timestamp comes from the genesis file
// so every node sharing the file agrees on the genesis hash.
func newGenesisBlock(gen genesis.Genesis) ledger.Block {
	gb := ledger.Block{
		Index:         0,
		TimeStamp:     uint64(gen.Date.UTC().Unix()),
		Transactions:  nil,
		PrevBlockHash: ledger.ZeroHash,
		Nonce:         0,
	}
	gb.BlockHash = gb.Hash()

	return gb
}
