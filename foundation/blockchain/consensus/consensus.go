// Package consensus implements longest valid chain conflict resolution
// between this node and its known peers.
package consensus

import (
	"context"
	"errors"

	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
	"github.com/lohithgsk/blockchain/foundation/blockchain/peer"
	"github.com/lohithgsk/blockchain/foundation/blockchain/state"
)

// FetchFunc knows how to retrieve the full chain held by a peer. The
// resolver only consumes this abstraction; the HTTP implementation lives
// in NetFetchChain.
type FetchFunc func(ctx context.Context, pr peer.Peer) ([]ledger.Block, error)

// Result reports the outcome of one resolution pass.
type Result struct {
	Replaced     bool `json:"replaced"`
	NewLength    int  `json:"new_length"`
	PeersChecked int  `json:"peers_checked"`
	PeersFailed  int  `json:"peers_failed"`
}

// Resolver fetches the chains of the known peers and adopts the longest
// valid one when it is strictly longer than the local chain.
type Resolver struct {
	state     *state.State
	fetch     FetchFunc
	evHandler state.EventHandler
}

// New constructs a resolver for the specified state.
func New(st *state.State, fetch FetchFunc, ev state.EventHandler) *Resolver {
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	return &Resolver{
		state:     st,
		fetch:     fetch,
		evHandler: ev,
	}
}

// Resolve runs one resolution pass against every known peer. A peer that
// cannot be reached or returns garbage is skipped, never adopted; if every
// peer fails the pass is a no-op, not an error. The local chain is only
// replaced by a strictly longer chain that passes the integrity checks, so
// resolution can never shorten the chain.
func (r *Resolver) Resolve(ctx context.Context) Result {
	r.evHandler("consensus: Resolve: started")
	defer r.evHandler("consensus: Resolve: completed")

	peers := r.state.RetrieveKnownPeers()

	var best []ledger.Block
	bestLength := r.state.Height()

	result := Result{
		PeersChecked: len(peers),
	}

	for _, pr := range peers {
		chain, err := r.fetch(ctx, pr)
		if err != nil {
			result.PeersFailed++
			r.evHandler("consensus: Resolve: peer[%s]: unreachable: %s", pr, err)
			continue
		}

		if len(chain) <= bestLength {
			r.evHandler("consensus: Resolve: peer[%s]: chain length[%d] not longer than best[%d]", pr, len(chain), bestLength)
			continue
		}

		if err := r.state.ValidateCandidateChain(chain); err != nil {
			r.evHandler("consensus: Resolve: peer[%s]: discarding chain: %s", pr, err)
			continue
		}

		best = chain
		bestLength = len(chain)
	}

	if best == nil {
		result.NewLength = r.state.Height()
		return result
	}

	// The swap can still lose a race against local mining that grew the
	// chain past the candidate while we were fetching. That is not a
	// failure, the local chain simply won.
	if err := r.state.ReplaceChain(best); err != nil {
		if !errors.Is(err, state.ErrNotLongerChain) {
			r.evHandler("consensus: Resolve: replace rejected: %s", err)
		}
		result.NewLength = r.state.Height()
		return result
	}

	result.Replaced = true
	result.NewLength = bestLength

	return result
}
