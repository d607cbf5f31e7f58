// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/sanikak2004/builder-quantum-den-sub002/app/services/node/handlers/v1/public"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/state"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/events"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/ledger/stats", pbl.Stats)
	app.Handle(http.MethodGet, version, "/ledger/blocks", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/ledger/blocks/:number", pbl.BlockByNumber)
	app.Handle(http.MethodGet, version, "/ledger/tx/pending", pbl.Mempool)
	app.Handle(http.MethodPost, version, "/ledger/tx/submit", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/ledger/tx/:id/proof", pbl.Proof)
	app.Handle(http.MethodPost, version, "/ledger/mine", pbl.Mine)
	app.Handle(http.MethodGet, version, "/ledger/validate", pbl.Validate)
}
