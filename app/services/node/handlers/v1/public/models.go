package public

import (
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/state"
	"github.com/shopspring/decimal"
)

type tx struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Data      string          `json:"data"`
	TimeStamp uint64          `json:"timestamp"`
	Signature string          `json:"signature"`
}

type block struct {
	Index        uint64 `json:"index"`
	Hash         string `json:"hash"`
	PreviousHash string `json:"previousHash"`
	TimeStamp    uint64 `json:"timestamp"`
	Nonce        uint64 `json:"nonce"`
	MerkleRoot   string `json:"merkleRoot"`
	Validator    string `json:"validator"`
	Difficulty   uint   `json:"difficulty"`
	GasUsed      uint64 `json:"gasUsed"`
	GasLimit     uint64 `json:"gasLimit"`
	Transactions []tx   `json:"transactions"`
}

type stats struct {
	TotalBlocks         int             `json:"totalBlocks"`
	TotalTransactions   int             `json:"totalTransactions"`
	PendingTransactions int             `json:"pendingTransactions"`
	TotalSupply         decimal.Decimal `json:"totalSupply"`
	Difficulty          uint            `json:"difficulty"`
	MiningReward        decimal.Decimal `json:"miningReward"`
	AverageBlockTime    float64         `json:"averageBlockTime"`
	NetworkHashRate     string          `json:"networkHashRate"`
	UniqueAddresses     int             `json:"uniqueAddresses"`
	LatestBlockHash     string          `json:"latestBlockHash"`
	IsValid             bool            `json:"isValid"`
	IsMining            bool            `json:"isMining"`
}

type proof struct {
	Tx          tx       `json:"transaction"`
	BlockNumber uint64   `json:"blockIndex"`
	BlockHash   string   `json:"blockHash"`
	MerkleRoot  string   `json:"merkleRoot"`
	Hashes      []string `json:"hashes"`
	Order       []int64  `json:"order"`
}

// SubmitTx is the payload for submitting a transaction.
type SubmitTx struct {
	From      string          `json:"from" validate:"required"`
	To        string          `json:"to" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Data      string          `json:"data"`
	TimeStamp uint64          `json:"timestamp"`
	Signature string          `json:"signature" validate:"required"`
}

// MineRequest is the payload for mining the next block.
type MineRequest struct {
	MinerAddress string `json:"minerAddress"`
}

// =============================================================================

func toTx(t database.Tx) tx {
	return tx{
		ID:        t.ID,
		Kind:      t.Kind,
		From:      t.From,
		To:        t.To,
		Amount:    t.Amount,
		Fee:       t.Fee,
		Data:      t.Data,
		TimeStamp: t.TimeStamp,
		Signature: t.Signature,
	}
}

func toTxs(trans []database.Tx) []tx {
	txs := make([]tx, len(trans))
	for i, t := range trans {
		txs[i] = toTx(t)
	}
	return txs
}

func toBlock(b database.Block) block {
	return block{
		Index:        b.Header.Number,
		Hash:         b.Hash(),
		PreviousHash: b.Header.PrevBlockHash,
		TimeStamp:    b.Header.TimeStamp,
		Nonce:        b.Header.Nonce,
		MerkleRoot:   b.Header.TransRoot,
		Validator:    b.Header.Beneficiary,
		Difficulty:   b.Header.Difficulty,
		GasUsed:      b.Header.GasUsed,
		GasLimit:     b.Header.GasLimit,
		Transactions: toTxs(b.Values()),
	}
}

func toStats(s state.Stats) stats {
	return stats{
		TotalBlocks:         s.TotalBlocks,
		TotalTransactions:   s.TotalTransactions,
		PendingTransactions: s.PendingTransactions,
		TotalSupply:         s.TotalSupply,
		Difficulty:          s.Difficulty,
		MiningReward:        s.MiningReward,
		AverageBlockTime:    s.AverageBlockTime,
		NetworkHashRate:     s.NetworkHashRate,
		UniqueAddresses:     s.UniqueAddresses,
		LatestBlockHash:     s.LatestBlockHash,
		IsValid:             s.IsValid,
		IsMining:            s.IsMining,
	}
}

func toProof(p state.Proof) proof {
	return proof{
		Tx:          toTx(p.Tx),
		BlockNumber: p.BlockNumber,
		BlockHash:   p.BlockHash,
		MerkleRoot:  p.TransRoot,
		Hashes:      p.Hashes,
		Order:       p.Order,
	}
}
