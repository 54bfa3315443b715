package worker

import (
	"context"
	"time"
)

// syncTimeout bounds one full resolution pass across all peers.
const syncTimeout = 30 * time.Second

// syncOperations runs periodic longest chain resolution against the
// known peers.
func (w *Worker) syncOperations() {
	w.evHandler("worker: syncOperations: G started")
	defer w.evHandler("worker: syncOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runSyncOperation()
			}
		case <-w.shut:
			w.evHandler("worker: syncOperations: received shut signal")
			return
		}
	}
}

// runSyncOperation performs one longest chain resolution pass.
func (w *Worker) runSyncOperation() {
	w.evHandler("worker: runSyncOperation: started")
	defer w.evHandler("worker: runSyncOperation: completed")

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	result := w.resolver.Resolve(ctx)

	switch {
	case result.Replaced:
		w.evHandler("worker: runSyncOperation: chain replaced: new length[%d]", result.NewLength)
	case result.PeersFailed > 0:
		w.evHandler("worker: runSyncOperation: chain authoritative: peers unreachable[%d/%d]", result.PeersFailed, result.PeersChecked)
	}
}
