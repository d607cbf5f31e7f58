// Package storage selects one of the block storage implementations by name.
package storage

import (
	"fmt"
	"strings"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/ledger"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/storage/badger"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/storage/disk"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/storage/memory"
)

// Set of supported storage kinds.
const (
	KindMemory = "memory"
	KindDisk   = "disk"
	KindBadger = "badger"
)

// Open constructs the storage of the specified kind rooted at dbPath. The
// memory kind ignores the path.
func Open(kind string, dbPath string) (ledger.Storage, error) {
	switch strings.ToLower(kind) {
	case KindMemory:
		return memory.New(), nil
	case KindDisk:
		return disk.New(dbPath)
	case KindBadger:
		return badger.New(dbPath)
	}

	return nil, fmt.Errorf("unknown storage %q", kind)
}
