// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lohithgsk/blockchain/business/web/errs"
	"github.com/lohithgsk/blockchain/foundation/blockchain/consensus"
	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
	"github.com/lohithgsk/blockchain/foundation/blockchain/peer"
	"github.com/lohithgsk/blockchain/foundation/blockchain/state"
	"github.com/lohithgsk/blockchain/foundation/events"
	"github.com/lohithgsk/blockchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// peerProbeTimeout bounds the per-peer connectivity checks performed by
// the status and peer registration handlers.
const peerProbeTimeout = 2 * time.Second

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Resolver *consensus.Resolver
	Fetch    consensus.FetchFunc
	WS       websocket.Upgrader
	Evts     *events.Events
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Chain returns the full ordered chain and its length.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	chain := h.State.RetrieveChain()

	resp := chainInfo{
		Chain:  chain,
		Length: len(chain),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions in FIFO order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pool := h.State.RetrieveMempool()

	resp := struct {
		Transactions []ledger.Tx `json:"pending_transactions"`
		Count        int         `json:"count"`
	}{
		Transactions: pool,
		Count:        len(pool),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var payload newTx
	if err := web.Decode(r, &payload); err != nil {
		return err
	}

	tx, err := ledger.NewTx(ledger.AccountID(payload.Sender), ledger.AccountID(payload.Recipient), payload.Amount)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", tx.Sender, "recipient", tx.Recipient, "amount", tx.Amount)

	block, err := h.State.SubmitTransaction(tx)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := submitResult{
		Message:     fmt.Sprintf("Transaction will be added to Block %d", block),
		Block:       block,
		Transaction: tx,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Mine mines the next block from the pending transactions. The mining
// itself runs on the worker goroutine; this handler waits on the result.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	t := time.Now()

	block, err := h.State.Worker.MineNow(ctx)
	if err != nil {
		if errors.Is(err, state.ErrNoTransactions) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	resp := minedBlock{
		Message:    "New Block Forged",
		Block:      block,
		MiningTime: time.Since(t).Round(time.Millisecond).String(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balance replays the chain and returns the balance for an account.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")
	if account == "" {
		return errs.NewTrusted(errors.New("account is required"), http.StatusBadRequest)
	}

	resp := balanceInfo{
		Account: account,
		Balance: h.State.BalanceOf(ledger.AccountID(account)),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Peers returns the set of known peers.
func (h Handlers) Peers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Peers []peer.Peer `json:"peers"`
		Count int         `json:"count"`
	}{
		Peers: h.State.RetrieveKnownPeers(),
		Count: len(h.State.RetrieveKnownPeers()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterPeers probes and registers a set of peer URLs. A peer whose
// chain endpoint cannot be reached is reported but not registered.
func (h Handlers) RegisterPeers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var payload registerPeers
	if err := web.Decode(r, &payload); err != nil {
		return err
	}

	resp := registerResult{
		Message:    "Registration complete",
		Registered: []string{},
		Failed:     []string{},
	}

	for _, rawURL := range payload.Peers {
		pr, err := peer.Parse(rawURL)
		if err != nil {
			resp.Failed = append(resp.Failed, rawURL)
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, peerProbeTimeout)
		_, err = h.Fetch(probeCtx, pr)
		cancel()
		if err != nil {
			h.Log.Infow("register peer", "status", "unreachable", "peer", pr, "ERROR", err)
			resp.Failed = append(resp.Failed, rawURL)
			continue
		}

		h.State.AddKnownPeer(pr)
		resp.Registered = append(resp.Registered, rawURL)
	}

	for _, pr := range h.State.RetrieveKnownPeers() {
		resp.KnownPeers = append(resp.KnownPeers, pr.Host)
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Sync runs one longest chain resolution pass against the known peers.
func (h Handlers) Sync(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	oldLength := h.State.Height()

	result := h.Resolver.Resolve(ctx)

	message := "Our chain is authoritative"
	if result.Replaced {
		message = fmt.Sprintf("Chain was replaced! Length changed from %d to %d", oldLength, result.NewLength)
	}

	resp := syncInfo{
		Message:      message,
		Replaced:     result.Replaced,
		NewLength:    result.NewLength,
		PeersChecked: result.PeersChecked,
		PeersFailed:  result.PeersFailed,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Status returns the health of this node, including a connectivity probe
// of every known peer.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	latest := h.State.RetrieveLatestBlock()

	peerStatus := make(map[string]string)
	for _, pr := range h.State.RetrieveKnownPeers() {
		probeCtx, cancel := context.WithTimeout(ctx, peerProbeTimeout)
		_, err := h.Fetch(probeCtx, pr)
		cancel()

		switch err {
		case nil:
			peerStatus[pr.Host] = "online"
		default:
			peerStatus[pr.Host] = "offline"
		}
	}

	resp := statusInfo{
		NodeID:          string(h.State.RetrieveMinerAccountID()),
		Status:          "online",
		ChainLength:     h.State.Height(),
		ChainValid:      h.State.ValidateLocalChain() == nil,
		LatestBlockHash: latest.BlockHash,
		PendingCount:    h.State.QueryMempoolLength(),
		PeerCount:       len(h.State.RetrieveKnownPeers()),
		Difficulty:      gen.Difficulty,
		MiningReward:    gen.MiningReward,
		PeerStatus:      peerStatus,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
