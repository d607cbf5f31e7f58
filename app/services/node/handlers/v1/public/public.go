// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sanikak2004/builder-quantum-den-sub002/business/sys/metrics"
	"github.com/sanikak2004/builder-quantum-den-sub002/business/web/errs"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/ledger"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/state"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/events"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/validate"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Stats returns the summary metrics of the ledger.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, toStats(h.State.Stats()), http.StatusOK)
}

// Blocks returns the full chain in order.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dbBlocks := h.State.QueryBlocks()

	blocks := make([]block, len(dbBlocks))
	for i, blk := range dbBlocks {
		blocks[i] = toBlock(blk)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// BlockByNumber returns a single block.
func (h Handlers) BlockByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	number, err := strconv.ParseUint(web.Param(r, "number"), 10, 64)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block number: %w", err), http.StatusBadRequest)
	}

	blk, err := h.State.QueryBlock(number)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return err
	}

	return web.Respond(ctx, w, toBlock(blk), http.StatusOK)
}

// Mempool returns the set of pending transactions in selection order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, toTxs(h.State.QueryMempool()), http.StatusOK)
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req SubmitTx
	if err := web.Decode(r, &req); err != nil {
		return decodeError(err)
	}

	tx := database.NewTx(req.From, req.To, req.Amount, req.Fee, req.Data, req.TimeStamp, req.Signature)

	h.Log.Infow("submit tran", "traceid", v.TraceID, "tx", tx, "fee", tx.Fee)

	id, err := h.State.SubmitTransaction(tx)
	if err != nil {
		if errors.Is(err, database.ErrInvalidTransaction) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	resp := struct {
		ID string `json:"id"`
	}{
		ID: id,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Mine mines the next block. A missing miner address credits the node's
// configured miner.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req MineRequest
	if err := web.Decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		return decodeError(err)
	}

	blk, err := h.State.MineNewBlock(ctx, req.MinerAddress)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrMiningInProgress):
			return errs.NewTrusted(err, http.StatusConflict)
		case errors.Is(err, state.ErrNothingToMine):
			return errs.NewTrusted(err, http.StatusUnprocessableEntity)
		case errors.Is(err, state.ErrMinerAddressMissing):
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	metrics.AddMined()
	h.Log.Infow("mined block", "traceid", v.TraceID, "number", blk.Header.Number, "hash", blk.Hash(), "nonce", blk.Header.Nonce)

	return web.Respond(ctx, w, toBlock(blk), http.StatusCreated)
}

// Validate walks the chain and reports the first violation found.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.ValidateChain(), http.StatusOK)
}

// Proof returns the merkle inclusion proof of a mined transaction.
func (h Handlers) Proof(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	p, err := h.State.QueryProof(web.Param(r, "id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return err
	}

	return web.Respond(ctx, w, toProof(p), http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving events from the ledger.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting for events from the ledger or ticker.
	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
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

// decodeError marks a payload the client got wrong as a trusted error.
func decodeError(err error) error {
	if validate.IsFieldErrors(err) {
		return err
	}

	return errs.NewTrusted(err, http.StatusBadRequest)
}
