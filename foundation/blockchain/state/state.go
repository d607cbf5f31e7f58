// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/genesis"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/ledger"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/mempool"
	"github.com/shopspring/decimal"
)

// ViewerPrefix marks the events meant for the websocket viewers.
const ViewerPrefix = "viewer:"

// EventHandler defines a function that is called when events
// occur in the processing of persisting blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for automatic mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger node.
type Config struct {
	MinerAddress   string
	Genesis        genesis.Genesis
	Storage        ledger.Storage
	SelectStrategy string
	EvHandler      EventHandler
}

// State manages the ledger and the mempool.
type State struct {
	minerAddress string
	evHandler    EventHandler
	genesis      genesis.Genesis

	ledger  *ledger.Ledger
	mempool *mempool.Mempool
	mining  atomic.Bool

	mu          sync.RWMutex
	totalSupply decimal.Decimal

	Worker Worker
}

// New constructs the state, loading the ledger from storage.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	ldg, err := ledger.New(cfg.Storage, cfg.Genesis, ev)
	if err != nil {
		return nil, err
	}

	// The mempool consults the ledger to reject transactions that were
	// already mined.
	mp, err := mempool.NewWithStrategy(cfg.SelectStrategy, ldg.HasTransaction)
	if err != nil {
		ldg.Close()
		return nil, err
	}

	state := State{
		minerAddress: cfg.MinerAddress,
		evHandler:    ev,
		genesis:      cfg.Genesis,
		ledger:       ldg,
		mempool:      mp,
		totalSupply:  supply(ldg.All()),
		Worker:       nopWorker{},
	}

	// The Worker is replaced by the call to worker.Run when automatic
	// mining is turned on.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all mining activity before closing the storage.
	s.Worker.Shutdown()

	return s.ledger.Close()
}

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// MinerAddress returns the address credited when no address is provided.
func (s *State) MinerAddress() string {
	return s.minerAddress
}

// IsMining reports whether a mining operation is in flight.
func (s *State) IsMining() bool {
	return s.mining.Load()
}

// TotalSupply returns the initial supply plus every mining reward paid.
func (s *State) TotalSupply() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totalSupply
}

// =============================================================================

// supply sums the genesis seed and the rewards found in the blocks.
func supply(blocks []database.Block) decimal.Decimal {
	total := decimal.Zero
	for _, block := range blocks {
		for _, tx := range block.Values() {
			if tx.Kind == database.TxKindGenesis || tx.IsReward() {
				total = total.Add(tx.Amount)
			}
		}
	}

	return total
}

// blockEvent renders the event sent to viewers when a block is added.
func blockEvent(block database.Block) string {
	trans := block.Values()

	ev := struct {
		Number      uint64 `json:"number"`
		Hash        string `json:"hash"`
		PrevHash    string `json:"prev_block_hash"`
		Beneficiary string `json:"beneficiary"`
		Nonce       uint64 `json:"nonce"`
		Trans       int    `json:"trans"`
	}{
		Number:      block.Header.Number,
		Hash:        block.Hash(),
		PrevHash:    block.Header.PrevBlockHash,
		Beneficiary: block.Header.Beneficiary,
		Nonce:       block.Header.Nonce,
		Trans:       len(trans),
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return "{}"
	}

	return string(data)
}

// =============================================================================

// nopWorker is used until a worker registers itself.
type nopWorker struct{}

func (nopWorker) Shutdown()          {}
func (nopWorker) SignalStartMining() {}
