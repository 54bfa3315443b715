// Package worker implements the background mining and chain syncing
// operations for the node.
package worker

import (
	"sync"
	"time"

	"github.com/lohithgsk/blockchain/foundation/blockchain/consensus"
	"github.com/lohithgsk/blockchain/foundation/blockchain/state"
)

// Worker manages the goroutines performing mining and periodic consensus
// sweeps. Mining requests are funneled through a single goroutine so only
// one proof of work search runs at a time.
type Worker struct {
	state     *state.State
	resolver  *consensus.Resolver
	wg        sync.WaitGroup
	ticker    *time.Ticker
	shut      chan struct{}
	mineNow   chan mineRequest
	evHandler state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes.
func Run(st *state.State, resolver *consensus.Resolver, syncInterval time.Duration, evHandler state.EventHandler) *Worker {
	w := Worker{
		state:     st,
		resolver:  resolver,
		ticker:    time.NewTicker(syncInterval),
		shut:      make(chan struct{}),
		mineNow:   make(chan mineRequest),
		evHandler: evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Sync this node with its peers before accepting any work so a
	// restarted node catches up first.
	w.runSyncOperation()

	// Load the set of operations we need to run.
	operations := []func(){
		w.miningOperations,
		w.syncOperations,
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	// Wait for the G's to report they are running.
	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return &w
}

// Shutdown terminates the goroutines performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: stop ticker")
	w.ticker.Stop()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
