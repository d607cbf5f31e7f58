// Package badger implements the ability to read and write blocks to a badger
// key value store, with a small cache of recently read blocks.
package badger

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/ledger"
)

// ErrNotExist is returned when a block number is not in the store.
var ErrNotExist = errors.New("block does not exist")

// cacheSize is the number of decoded blocks kept in memory.
const cacheSize = 512

// Badger represents the serialization implementation for reading and storing
// blocks in a badger database. This implements the ledger.Storage interface.
type Badger struct {
	db    *badger.DB
	cache *lru.Cache
}

// New constructs a Badger value for use. An empty dbPath opens an in-memory
// database.
func New(dbPath string) (*Badger, error) {
	opts := badger.DefaultOptions(dbPath).
		WithSyncWrites(true).
		WithLogger(nil)

	if dbPath == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}

	cache, err := lru.New(cacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Badger{db: db, cache: cache}, nil
}

// Close releases the badger database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Write stores the block under its number.
func (b *Badger) Write(blockData database.BlockData) error {
	data, err := json.Marshal(blockData)
	if err != nil {
		return err
	}

	num := blockData.Header.Number

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(num), data)
	})
	if err != nil {
		return fmt.Errorf("writing block %d: %w", num, err)
	}

	b.cache.Add(num, blockData)

	return nil
}

// GetBlock returns the block stored under the specified number.
func (b *Badger) GetBlock(num uint64) (database.BlockData, error) {
	if v, ok := b.cache.Get(num); ok {
		return v.(database.BlockData), nil
	}

	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(num))
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)
		return err
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return database.BlockData{}, ErrNotExist
	case err != nil:
		return database.BlockData{}, fmt.Errorf("reading block %d: %w", num, err)
	}

	var blockData database.BlockData
	if err := json.Unmarshal(data, &blockData); err != nil {
		return database.BlockData{}, fmt.Errorf("decoding block %d: %w", num, err)
	}

	b.cache.Add(num, blockData)

	return blockData, nil
}

// ForEach returns an iterator to walk through all the blocks
// starting with the genesis block.
func (b *Badger) ForEach() ledger.Iterator {
	return &badgerIterator{storage: b}
}

// Reset drops every block from the store.
func (b *Badger) Reset() error {
	b.cache.Purge()
	return b.db.DropAll()
}

// key forms the key for the specified block. Numbers are zero padded so
// the keys sort in chain order.
func key(num uint64) []byte {
	return []byte(fmt.Sprintf("block:%020d", num))
}

// =============================================================================

// badgerIterator represents the iteration implementation for walking
// through and reading blocks from badger. This implements the ledger
// Iterator interface.
type badgerIterator struct {
	storage *Badger // Access to the storage API.
	current uint64  // Current block number being iterated over.
	eoc     bool    // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block from badger.
func (bi *badgerIterator) Next() (database.BlockData, error) {
	if bi.eoc {
		return database.BlockData{}, errors.New("end of chain")
	}

	blockData, err := bi.storage.GetBlock(bi.current)
	if errors.Is(err, ErrNotExist) {
		bi.eoc = true
	}

	bi.current++

	return blockData, err
}

// Done returns the end of chain value.
func (bi *badgerIterator) Done() bool {
	return bi.eoc
}
