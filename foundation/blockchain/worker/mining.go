package worker

import (
	"context"
	"errors"
	"time"

	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
)

// ErrShuttingDown is returned for mining requests made while the node is
// going down.
var ErrShuttingDown = errors.New("node is shutting down")

// mineRequest carries a mining request to the mining goroutine along with
// the channel the result is reported back on.
type mineRequest struct {
	ctx  context.Context
	resp chan mineResult
}

type mineResult struct {
	block ledger.Block
	err   error
}

// MineNow submits a mining request to the mining goroutine and waits for
// the result. Requests are processed one at a time so two callers can
// never mine concurrently against the same tip.
func (w *Worker) MineNow(ctx context.Context) (ledger.Block, error) {
	resp := make(chan mineResult, 1)

	select {
	case w.mineNow <- mineRequest{ctx: ctx, resp: resp}:
	case <-w.shut:
		return ledger.Block{}, ErrShuttingDown
	case <-ctx.Done():
		return ledger.Block{}, ctx.Err()
	}

	select {
	case result := <-resp:
		return result.block, result.err
	case <-ctx.Done():
		return ledger.Block{}, ctx.Err()
	}
}

// miningOperations handles mining requests.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case req := <-w.mineNow:
			if !w.isShutdown() {
				w.runMiningOperation(req)
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation mines the next block and reports the result back to
// the requester.
func (w *Worker) runMiningOperation(req mineRequest) {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	t := time.Now()
	block, err := w.state.MineNewBlock(req.ctx)
	duration := time.Since(t)

	w.evHandler("worker: runMiningOperation: MINING: duration[%v]", duration)

	if err != nil {
		switch {
		case errors.Is(err, req.ctx.Err()):
			w.evHandler("worker: runMiningOperation: MINING: CANCEL: requested")
		default:
			w.evHandler("worker: runMiningOperation: MINING: WARNING: %s", err)
		}
	}

	// The response channel is buffered so an abandoned requester can
	// never block the mining goroutine.
	req.resp <- mineResult{block: block, err: err}
}
