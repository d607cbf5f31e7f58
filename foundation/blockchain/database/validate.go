package database

import (
	"fmt"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/merkle"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/signature"
)

// ViolationKind names the integrity rule a block breaks.
type ViolationKind string

// Set of integrity rules checked for every block.
const (
	ViolationNumber     ViolationKind = "block_number"
	ViolationLinkage    ViolationKind = "chain_linkage"
	ViolationHash       ViolationKind = "block_hash"
	ViolationMerkleRoot ViolationKind = "merkle_root"
	ViolationGasLimit   ViolationKind = "gas_limit"
	ViolationDifficulty ViolationKind = "difficulty"
	ViolationReward     ViolationKind = "reward"
)

// Violation describes the first rule a block was found to break.
type Violation struct {
	Index  uint64        `json:"index"`
	Kind   ViolationKind `json:"kind"`
	Detail string        `json:"detail"`
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return fmt.Sprintf("block %d: %s: %s", v.Index, v.Kind, v.Detail)
}

func newViolation(index uint64, kind ViolationKind, format string, args ...any) *Violation {
	return &Violation{
		Index:  index,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

// =============================================================================

// ValidateGenesis checks block zero. Genesis is not subject to the proof of
// work rule.
func (b Block) ValidateGenesis(evHandler func(v string, args ...any)) *Violation {
	evHandler("database: ValidateGenesis: validate: blk[%d]", b.Header.Number)

	if b.Header.Number != 0 {
		return newViolation(b.Header.Number, ViolationNumber, "genesis block number is %d", b.Header.Number)
	}

	if b.Header.PrevBlockHash != signature.ZeroHash {
		return newViolation(0, ViolationLinkage, "genesis previous hash is %s", b.Header.PrevBlockHash)
	}

	if v := b.validateContent(); v != nil {
		return v
	}

	return nil
}

// ValidateBlock takes a block and validates it against its parent. Checks
// run in a fixed order and the first broken rule is reported.
func (b Block) ValidateBlock(previousBlock Block, evHandler func(v string, args ...any)) *Violation {
	number := b.Header.Number

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block number is the next number", number)

	if exp := previousBlock.Header.Number + 1; number != exp {
		return newViolation(number, ViolationNumber, "got %d, exp %d", number, exp)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: parent hash does match parent block", number)

	if parentHash := previousBlock.Hash(); b.Header.PrevBlockHash != parentHash {
		return newViolation(number, ViolationLinkage, "got %s, exp %s", b.Header.PrevBlockHash, parentHash)
	}

	if v := b.validateContent(); v != nil {
		return v
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: gas used is within the gas limit", number)

	if b.Header.GasUsed > b.Header.GasLimit {
		return newViolation(number, ViolationGasLimit, "gas used %d exceeds limit %d", b.Header.GasUsed, b.Header.GasLimit)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block hash has been solved", number)

	if hash := b.Hash(); !signature.LeadingZeros(hash, b.Header.Difficulty) {
		return newViolation(number, ViolationDifficulty, "%s does not have %d leading zeros", hash, b.Header.Difficulty)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block has a single trailing reward", number)

	trans := b.Values()
	for i, tx := range trans {
		last := i == len(trans)-1
		switch {
		case tx.IsReward() && !last:
			return newViolation(number, ViolationReward, "reward transaction at position %d", i)
		case !tx.IsReward() && last:
			return newViolation(number, ViolationReward, "last transaction is not the reward")
		case tx.IsReward() && tx.To != b.Header.Beneficiary:
			return newViolation(number, ViolationReward, "reward paid to %s, beneficiary is %s", tx.To, b.Header.Beneficiary)
		}
	}

	return nil
}

// validateContent checks the recorded hash and the merkle root against a
// recomputation.
func (b Block) validateContent() *Violation {
	number := b.Header.Number

	if hash := b.Hash(); b.sealedHash != hash {
		return newViolation(number, ViolationHash, "recorded %s, computed %s", b.sealedHash, hash)
	}

	if b.Trans == nil {
		return newViolation(number, ViolationMerkleRoot, "block has no transactions")
	}

	// The tree is rebuilt from the values so leaf hashes are recomputed
	// instead of read from the cached nodes.
	tree, err := b.rebuildTree()
	if err != nil {
		return newViolation(number, ViolationMerkleRoot, "rebuilding tree: %s", err)
	}

	if root := tree.RootHex(); b.Header.TransRoot != root {
		return newViolation(number, ViolationMerkleRoot, "got %s, exp %s", b.Header.TransRoot, root)
	}

	return nil
}

// rebuildTree constructs a fresh merkle tree over the block transactions.
func (b Block) rebuildTree() (*merkle.Tree[Tx], error) {
	return merkle.NewTree(b.Trans.Values())
}
