// Package ledger maintains the append-only sequence of blocks. The ledger is
// the single owner of the blocks, the only mutation is Append.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/genesis"
)

// Set of error variables for the ledger.
var (
	ErrChainLinkageViolation = errors.New("chain linkage violation")
	ErrInvalidBlock          = errors.New("invalid block")
	ErrNotFound              = errors.New("not found")
)

// Storage interface represents the behavior required to be implemented by any
// package providing support for storing and reading the blocks.
type Storage interface {
	Write(blockData database.BlockData) error
	GetBlock(num uint64) (database.BlockData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by any
// package providing support to iterate over the blocks, starting with genesis.
type Iterator interface {
	Next() (database.BlockData, error)
	Done() bool
}

// Snapshot is a consistent copy of the ledger taken under a single lock.
type Snapshot struct {
	Blocks            []database.Block
	TotalTransactions int
	UniqueAddresses   int
}

// Latest returns the highest block of the snapshot.
func (s Snapshot) Latest() database.Block {
	return s.Blocks[len(s.Blocks)-1]
}

// =============================================================================

// Ledger manages the blocks in memory backed by a storage implementation.
type Ledger struct {
	mu        sync.RWMutex
	storage   Storage
	evHandler func(v string, args ...any)

	blocks    []database.Block
	txIndex   map[string]uint64
	addresses map[string]struct{}
	totalTx   int
}

// New constructs a ledger, loading the blocks found in storage. An empty
// storage is seeded with the genesis block.
func New(storage Storage, gen genesis.Genesis, evHandler func(v string, args ...any)) (*Ledger, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	l := Ledger{
		storage:   storage,
		evHandler: ev,
		txIndex:   make(map[string]uint64),
		addresses: make(map[string]struct{}),
	}

	if err := l.load(); err != nil {
		return nil, err
	}

	genesisBlock, err := database.NewGenesisBlock(gen)
	if err != nil {
		return nil, err
	}

	switch len(l.blocks) {
	case 0:
		ev("ledger: New: seeding genesis: blk[%s]", genesisBlock.Hash())

		if err := l.storage.Write(database.NewBlockData(genesisBlock)); err != nil {
			return nil, fmt.Errorf("writing genesis: %w", err)
		}
		l.publish(genesisBlock)

	default:
		if stored := l.blocks[0].Hash(); stored != genesisBlock.Hash() {
			ev("ledger: New: WARNING: stored genesis[%s] differs from configured genesis[%s]", stored, genesisBlock.Hash())
		}
	}

	return &l, nil
}

// load reads all the blocks from storage. Blocks must be stored contiguously
// from genesis; other integrity rules are left to chain validation so a
// tampered store can still be inspected.
func (l *Ledger) load() error {
	iter := l.storage.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			return err
		}

		block, err := database.ToBlock(blockData)
		if err != nil {
			return fmt.Errorf("reading block %d: %w", blockData.Header.Number, err)
		}

		if exp := uint64(len(l.blocks)); block.Header.Number != exp {
			return fmt.Errorf("storage out of order, got block %d, exp %d", block.Header.Number, exp)
		}

		l.evHandler("ledger: load: blk[%d]: hash[%s]", block.Header.Number, block.SealedHash())
		l.publish(block)
	}

	return nil
}

// Close releases the storage.
func (l *Ledger) Close() error {
	return l.storage.Close()
}

// =============================================================================

// Append adds the block to the end of the chain. The block must carry the
// next number and the hash of the latest block, and must pass the block
// integrity rules.
func (l *Ledger) Append(block database.Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	latest := l.blocks[len(l.blocks)-1]

	if v := block.ValidateBlock(latest, l.evHandler); v != nil {
		switch v.Kind {
		case database.ViolationNumber, database.ViolationLinkage:
			return fmt.Errorf("%w: %s", ErrChainLinkageViolation, v)
		default:
			return fmt.Errorf("%w: %s", ErrInvalidBlock, v)
		}
	}

	l.evHandler("ledger: Append: write to storage: blk[%d]", block.Header.Number)

	if err := l.storage.Write(database.NewBlockData(block)); err != nil {
		return fmt.Errorf("writing block %d: %w", block.Header.Number, err)
	}

	l.publish(block)

	return nil
}

// publish adds the block to memory and the indexes. The caller must hold the
// write lock or have exclusive access.
func (l *Ledger) publish(block database.Block) {
	trans := block.Values()
	for _, tx := range trans {
		l.txIndex[tx.ID] = block.Header.Number
		l.addresses[tx.From] = struct{}{}
		l.addresses[tx.To] = struct{}{}
	}

	l.totalTx += len(trans)
	l.blocks = append(l.blocks, block)
}

// =============================================================================

// Latest returns the highest block, genesis if nothing was mined yet.
func (l *Ledger) Latest() database.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.blocks[len(l.blocks)-1]
}

// At returns the block with the specified number.
func (l *Ledger) At(number uint64) (database.Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if number >= uint64(len(l.blocks)) {
		return database.Block{}, fmt.Errorf("block %d: %w", number, ErrNotFound)
	}

	return l.blocks[number], nil
}

// All returns a copy of the blocks in order.
func (l *Ledger) All() []database.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	blocks := make([]database.Block, len(l.blocks))
	copy(blocks, l.blocks)

	return blocks
}

// Len returns the number of blocks including genesis.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.blocks)
}

// TotalTransactions returns the number of transactions across all blocks.
func (l *Ledger) TotalTransactions() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.totalTx
}

// HasTransaction reports whether the transaction id is recorded in a block.
func (l *Ledger) HasTransaction(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, exists := l.txIndex[id]
	return exists
}

// FindTransaction returns the transaction and the block holding it.
func (l *Ledger) FindTransaction(id string) (database.Tx, database.Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	number, exists := l.txIndex[id]
	if !exists {
		return database.Tx{}, database.Block{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}

	block := l.blocks[number]
	for _, tx := range block.Values() {
		if tx.ID == id {
			return tx, block, nil
		}
	}

	return database.Tx{}, database.Block{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

// Snapshot returns the blocks and counters as of a single point in time.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	blocks := make([]database.Block, len(l.blocks))
	copy(blocks, l.blocks)

	return Snapshot{
		Blocks:            blocks,
		TotalTransactions: l.totalTx,
		UniqueAddresses:   len(l.addresses),
	}
}
