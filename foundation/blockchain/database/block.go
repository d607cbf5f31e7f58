// Package database provides the ledger data model: transactions, blocks,
// the proof of work search, and the per block integrity rules.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/genesis"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/merkle"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/signature"
	"github.com/shopspring/decimal"
)

// powStep is the number of nonces tried between cancellation checks.
const powStep = 1 << 12

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64 `json:"number"`          // Zero based position of the block in the chain.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was mined in milliseconds.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
	Beneficiary   string `json:"beneficiary"`     // Address of the miner that sealed the block.
	Difficulty    uint   `json:"difficulty"`      // Number of 0's needed to solve the hash solution.
	TransRoot     string `json:"trans_root"`      // Merkle root of the transactions in this block.
	GasUsed       uint64 `json:"gas_used"`        // Gas consumed by the transactions.
	GasLimit      uint64 `json:"gas_limit"`       // Gas available to the block.
}

// Block represents a group of transactions batched together.
type Block struct {
	Header BlockHeader
	Trans  *merkle.Tree[Tx]

	// sealedHash is the hash recorded when the block was mined or read
	// back from storage. It is only ever compared, never trusted.
	sealedHash string
}

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	Beneficiary string
	Difficulty  uint
	GasPerTx    uint64
	GasLimit    uint64
	PrevBlock   Block
	Trans       []Tx
	EvHandler   func(v string, args ...any)
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle.
func POW(ctx context.Context, args POWArgs) (Block, error) {
	ev := args.EvHandler
	if ev == nil {
		ev = func(string, ...any) {}
	}

	gasUsed := args.GasPerTx * uint64(len(args.Trans))
	if gasUsed > args.GasLimit {
		return Block{}, fmt.Errorf("gas used %d exceeds gas limit %d", gasUsed, args.GasLimit)
	}

	// Construct a merkle tree from the transactions for this block. The root
	// of this tree will be part of the block to be mined.
	tree, err := merkle.NewTree(args.Trans)
	if err != nil {
		return Block{}, err
	}

	nb := Block{
		Header: BlockHeader{
			Number:        args.PrevBlock.Header.Number + 1,
			PrevBlockHash: args.PrevBlock.Hash(),
			TimeStamp:     uint64(time.Now().UTC().UnixMilli()),
			Nonce:         0,
			Beneficiary:   args.Beneficiary,
			Difficulty:    args.Difficulty,
			TransRoot:     tree.RootHex(),
			GasUsed:       gasUsed,
			GasLimit:      args.GasLimit,
		},
		Trans: tree,
	}

	if err := nb.performPOW(ctx, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, ev func(v string, args ...any)) error {
	ev("database: PerformPOW: MINING: started: blk[%d]", b.Header.Number)
	defer ev("database: PerformPOW: MINING: completed: blk[%d]", b.Header.Number)

	for _, tx := range b.Trans.Values() {
		ev("database: PerformPOW: MINING: tx[%s]", tx)
	}

	var attempts uint64
	for {
		if ctx.Err() != nil {
			ev("database: PerformPOW: MINING: CANCELLED: attempts[%d]", attempts)
			return ctx.Err()
		}

		hash, solved, tried := b.searchStep(powStep)
		attempts += tried
		if !solved {
			if attempts%(powStep*256) == 0 {
				ev("database: PerformPOW: MINING: attempts[%d]", attempts)
			}
			continue
		}

		b.sealedHash = hash

		ev("database: PerformPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: attempts[%d]", b.Header.PrevBlockHash, hash, attempts)
		return nil
	}
}

// searchStep tries up to n nonces starting at the current one. On success the
// header keeps the solving nonce, otherwise it is left on the next untried
// nonce so the search can resume.
func (b *Block) searchStep(n uint64) (hash string, solved bool, tried uint64) {
	for tried = 0; tried < n; tried++ {
		hash = b.Hash()
		if signature.LeadingZeros(hash, b.Header.Difficulty) {
			return hash, true, tried + 1
		}

		b.Header.Nonce++

		// The nonce space wrapped, so move the timestamp to get a new space.
		if b.Header.Nonce == 0 {
			b.Header.TimeStamp++
		}
	}

	return "", false, tried
}

// Hash returns the unique hash for the Block. Only the header fields that
// identify the block take part, the transactions are bound in through the
// merkle root.
func (b Block) Hash() string {
	identity := struct {
		Number        uint64 `json:"number"`
		PrevBlockHash string `json:"prev_block_hash"`
		TransRoot     string `json:"trans_root"`
		TimeStamp     uint64 `json:"timestamp"`
		Nonce         uint64 `json:"nonce"`
		Beneficiary   string `json:"beneficiary"`
	}{
		Number:        b.Header.Number,
		PrevBlockHash: b.Header.PrevBlockHash,
		TransRoot:     b.Header.TransRoot,
		TimeStamp:     b.Header.TimeStamp,
		Nonce:         b.Header.Nonce,
		Beneficiary:   b.Header.Beneficiary,
	}

	return signature.Hash(identity)
}

// SealedHash returns the hash recorded when the block was sealed.
func (b Block) SealedHash() string {
	return b.sealedHash
}

// Values returns the transactions of the block in inclusion order.
func (b Block) Values() []Tx {
	if b.Trans == nil {
		return nil
	}

	return b.Trans.Values()
}

// =============================================================================

// NewGenesisBlock constructs block zero from the genesis information. The
// block seeds the initial supply to the founder, or carries a zero value
// marker so the merkle root is always defined.
func NewGenesisBlock(g genesis.Genesis) (Block, error) {
	timeStamp := uint64(g.Date.UTC().UnixMilli())

	tx := Tx{
		Kind:      TxKindGenesis,
		From:      NetworkAddress,
		To:        g.Founder,
		Amount:    g.InitialSupply,
		Fee:       decimal.Zero,
		Data:      fmt.Sprintf("chain:%d", g.ChainID),
		TimeStamp: timeStamp,
		Signature: RewardSignature,
	}
	if tx.To == "" {
		tx.To = NetworkAddress
	}
	tx.ID = tx.ComputeID()

	tree, err := merkle.NewTree([]Tx{tx})
	if err != nil {
		return Block{}, err
	}

	block := Block{
		Header: BlockHeader{
			Number:        0,
			PrevBlockHash: signature.ZeroHash,
			TimeStamp:     timeStamp,
			Beneficiary:   NetworkAddress,
			Difficulty:    g.Difficulty,
			TransRoot:     tree.RootHex(),
			GasLimit:      g.GasLimit,
		},
		Trans: tree,
	}
	block.sealedHash = block.Hash()

	return block, nil
}

// =============================================================================

// BlockData represents what is written to storage.
type BlockData struct {
	Hash   string      `json:"hash"`
	Header BlockHeader `json:"block"`
	Trans  []Tx        `json:"trans"`
}

// NewBlockData constructs the value to serialize to storage.
func NewBlockData(block Block) BlockData {
	hash := block.sealedHash
	if hash == "" {
		hash = block.Hash()
	}

	return BlockData{
		Hash:   hash,
		Header: block.Header,
		Trans:  block.Values(),
	}
}

// ToBlock converts a BlockData into a Block. The merkle tree is rebuilt from
// the stored transactions, the header is taken as stored.
func ToBlock(blockData BlockData) (Block, error) {
	if len(blockData.Trans) == 0 {
		return Block{}, errors.New("block has no transactions")
	}

	tree, err := merkle.NewTree(blockData.Trans)
	if err != nil {
		return Block{}, err
	}

	nb := Block{
		Header:     blockData.Header,
		Trans:      tree,
		sealedHash: blockData.Hash,
	}

	return nb, nil
}
