package state

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
)

// Proof is the merkle inclusion proof of a mined transaction.
type Proof struct {
	Tx          database.Tx
	BlockNumber uint64
	BlockHash   string
	TransRoot   string
	Hashes      []string
	Order       []int64
}

// QueryLatest represents to query the latest block in the chain.
func (s *State) QueryLatest() database.Block {
	return s.ledger.Latest()
}

// QueryBlocks returns every block of the chain in order.
func (s *State) QueryBlocks() []database.Block {
	return s.ledger.All()
}

// QueryBlock returns the block with the specified number.
func (s *State) QueryBlock(number uint64) (database.Block, error) {
	return s.ledger.At(number)
}

// QueryMempool returns a copy of the mempool in selection order.
func (s *State) QueryMempool() []database.Tx {
	return s.mempool.Snapshot()
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryProof returns the merkle proof of a transaction recorded on the
// ledger.
func (s *State) QueryProof(id string) (Proof, error) {
	tx, block, err := s.ledger.FindTransaction(id)
	if err != nil {
		return Proof{}, err
	}

	hashes, order, err := block.Trans.Proof(tx)
	if err != nil {
		return Proof{}, err
	}

	encoded := make([]string, len(hashes))
	for i, h := range hashes {
		encoded[i] = hexutil.Encode(h)
	}

	proof := Proof{
		Tx:          tx,
		BlockNumber: block.Header.Number,
		BlockHash:   block.Hash(),
		TransRoot:   block.Header.TransRoot,
		Hashes:      encoded,
		Order:       order,
	}

	return proof, nil
}
