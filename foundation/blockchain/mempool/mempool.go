// Package mempool maintains the mempool for the ledger.
package mempool

import (
	"fmt"
	"sync"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/mempool/selector"
)

// KnownFunc reports whether a transaction id is already recorded outside the
// mempool, on the ledger.
type KnownFunc func(id string) bool

// Mempool represents a cache of transactions waiting to be mined, keyed by
// transaction id. Drained transactions stay in an in-flight set until the
// miner commits or restores them so a resubmission is caught while the
// block holding them is being sealed.
type Mempool struct {
	mu       sync.RWMutex
	pool     map[string]selector.Pending
	inflight map[string]selector.Pending
	arrival  uint64
	known    KnownFunc
	selectFn selector.Func
}

// New constructs a new mempool using the default sort strategy.
func New(known KnownFunc) (*Mempool, error) {
	return NewWithStrategy(selector.StrategyFee, known)
}

// NewWithStrategy constructs a new mempool with specified sort strategy.
func NewWithStrategy(strategy string, known KnownFunc) (*Mempool, error) {
	selectFn, err := selector.Retrieve(strategy)
	if err != nil {
		return nil, err
	}

	if known == nil {
		known = func(string) bool { return false }
	}

	mp := Mempool{
		pool:     make(map[string]selector.Pending),
		inflight: make(map[string]selector.Pending),
		known:    known,
		selectFn: selectFn,
	}

	return &mp, nil
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Submit validates and admits a transaction, returning its id. Duplicates
// of pending, in-flight, or already mined transactions are rejected.
func (mp *Mempool) Submit(tx database.Tx) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	if _, exists := mp.pool[tx.ID]; exists {
		return "", fmt.Errorf("%w: transaction %s is already pending", database.ErrInvalidTransaction, tx.ID)
	}

	if _, exists := mp.inflight[tx.ID]; exists {
		return "", fmt.Errorf("%w: transaction %s is being mined", database.ErrInvalidTransaction, tx.ID)
	}

	// The ledger is consulted while holding the lock. A block is appended
	// before its transactions leave the in-flight set, so an id is always
	// visible in one of the two places.
	if mp.known(tx.ID) {
		return "", fmt.Errorf("%w: transaction %s is already on the ledger", database.ErrInvalidTransaction, tx.ID)
	}

	mp.arrival++
	mp.pool[tx.ID] = selector.Pending{Tx: tx, Arrival: mp.arrival}

	return tx.ID, nil
}

// Snapshot returns the pending transactions in the selection order without
// removing them.
func (mp *Mempool) Snapshot() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return values(mp.selectFn(mp.pending(), -1))
}

// Drain removes up to howMany transactions in the selection order and moves
// them in-flight. Pass -1 for all the transactions. An empty pool returns an
// empty slice.
func (mp *Mempool) Drain(howMany int) []database.Tx {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	picked := mp.selectFn(mp.pending(), howMany)
	for _, p := range picked {
		delete(mp.pool, p.Tx.ID)
		mp.inflight[p.Tx.ID] = p
	}

	return values(picked)
}

// Commit forgets in-flight transactions that are now recorded on the ledger.
func (mp *Mempool) Commit(trans []database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for _, tx := range trans {
		delete(mp.inflight, tx.ID)
	}
}

// Restore returns in-flight transactions to the pool with their original
// admission order.
func (mp *Mempool) Restore(trans []database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for _, tx := range trans {
		p, exists := mp.inflight[tx.ID]
		if !exists {
			continue
		}

		delete(mp.inflight, tx.ID)
		mp.pool[tx.ID] = p
	}
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]selector.Pending)
	mp.inflight = make(map[string]selector.Pending)
}

// =============================================================================

// pending copies the pool into a slice. The caller must hold the lock.
func (mp *Mempool) pending() []selector.Pending {
	pending := make([]selector.Pending, 0, len(mp.pool))
	for _, p := range mp.pool {
		pending = append(pending, p)
	}

	return pending
}

func values(pending []selector.Pending) []database.Tx {
	trans := make([]database.Tx, len(pending))
	for i, p := range pending {
		trans[i] = p.Tx
	}

	return trans
}
