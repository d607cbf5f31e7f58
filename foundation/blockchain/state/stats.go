package state

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// blockTimeWindow is the number of recent block intervals averaged.
const blockTimeWindow = 10

// Stats represents the summary metrics of the ledger. AverageBlockTime is the
// mean of the last 10 block intervals, never counting the interval between
// genesis and block 1. With fewer than two mined blocks there is no sample,
// AverageBlockTime is 0 and NetworkHashRate is "0 H/s".
type Stats struct {
	TotalBlocks         int
	TotalTransactions   int
	PendingTransactions int
	TotalSupply         decimal.Decimal
	Difficulty          uint
	MiningReward        decimal.Decimal
	AverageBlockTime    float64
	NetworkHashRate     string
	UniqueAddresses     int
	LatestBlockHash     string
	IsValid             bool
	IsMining            bool
}

// Stats derives the metrics from a single ledger snapshot and the mempool.
func (s *State) Stats() Stats {
	snap := s.ledger.Snapshot()

	avg := averageBlockTime(snap.Blocks)

	return Stats{
		TotalBlocks:         len(snap.Blocks),
		TotalTransactions:   snap.TotalTransactions,
		PendingTransactions: s.mempool.Count(),
		TotalSupply:         s.TotalSupply(),
		Difficulty:          s.genesis.Difficulty,
		MiningReward:        s.genesis.MiningReward,
		AverageBlockTime:    avg,
		NetworkHashRate:     hashRate(s.genesis.Difficulty, avg),
		UniqueAddresses:     snap.UniqueAddresses,
		LatestBlockHash:     snap.Latest().Hash(),
		IsValid:             s.validateBlocks(snap.Blocks).IsValid,
		IsMining:            s.IsMining(),
	}
}

// averageBlockTime returns the mean time in seconds between the most recent
// blocks. The interval after genesis is skipped since the genesis timestamp
// is the chain start date.
func averageBlockTime(blocks []database.Block) float64 {
	first := max(2, len(blocks)-blockTimeWindow)

	var total float64
	var samples int
	for i := first; i < len(blocks); i++ {
		cur := blocks[i].Header.TimeStamp
		prev := blocks[i-1].Header.TimeStamp
		if cur < prev {
			continue
		}

		total += float64(cur-prev) / 1000
		samples++
	}

	if samples == 0 {
		return 0
	}

	return total / float64(samples)
}

// hashRate estimates the hashes per second the miners perform. A block at
// the difficulty takes 16^difficulty attempts on average.
func hashRate(difficulty uint, avgBlockTime float64) string {
	if avgBlockTime <= 0 {
		return "0 H/s"
	}

	rate := math.Pow(16, float64(difficulty)) / avgBlockTime

	return humanize.SIWithDigits(rate, 1, "H/s")
}
