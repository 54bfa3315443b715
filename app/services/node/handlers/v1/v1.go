// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/lohithgsk/blockchain/app/services/node/handlers/v1/public"
	"github.com/lohithgsk/blockchain/foundation/blockchain/consensus"
	"github.com/lohithgsk/blockchain/foundation/blockchain/state"
	"github.com/lohithgsk/blockchain/foundation/events"
	"github.com/lohithgsk/blockchain/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Resolver *consensus.Resolver
	Fetch    consensus.FetchFunc
	Evts     *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:      cfg.Log,
		State:    cfg.State,
		Resolver: cfg.Resolver,
		Fetch:    cfg.Fetch,
		Evts:     cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/chain/list", pbl.Chain)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodPost, version, "/tx/add", pbl.SubmitTransaction)
	app.Handle(http.MethodPost, version, "/mining/start", pbl.Mine)
	app.Handle(http.MethodGet, version, "/balances/list/:account", pbl.Balance)
	app.Handle(http.MethodGet, version, "/node/peers/list", pbl.Peers)
	app.Handle(http.MethodPost, version, "/node/peers/add", pbl.RegisterPeers)
	app.Handle(http.MethodPost, version, "/node/sync", pbl.Sync)
	app.Handle(http.MethodGet, version, "/node/status", pbl.Status)
	app.Handle(http.MethodGet, version, "/events", pbl.Events)
}
