package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/ledger"
)

// Set of error variables for mining.
var (
	ErrNothingToMine       = errors.New("nothing to mine")
	ErrMiningInProgress    = errors.New("mining in progress")
	ErrMinerAddressMissing = errors.New("miner address is required")
)

// appendAttempts is the number of times a sealed batch is offered to the
// ledger before giving up.
const appendAttempts = 2

// =============================================================================

// MineNewBlock drains a batch from the mempool and attempts to create a new
// block with a proper hash that can become the next block in the chain. An
// empty minerAddress credits the configured miner.
func (s *State) MineNewBlock(ctx context.Context, minerAddress string) (database.Block, error) {
	if minerAddress == "" {
		minerAddress = s.minerAddress
	}

	if minerAddress == "" {
		return database.Block{}, ErrMinerAddressMissing
	}

	if !s.mining.CompareAndSwap(false, true) {
		return database.Block{}, ErrMiningInProgress
	}
	defer s.mining.Store(false)

	s.evHandler("state: MineNewBlock: MINING: drain mempool")

	trans := s.mempool.Drain(s.genesis.MaxTransPerBlock())
	if len(trans) == 0 {
		return database.Block{}, ErrNothingToMine
	}

	block, err := s.sealAndAppend(ctx, minerAddress, trans)
	if err != nil {
		s.evHandler("state: MineNewBlock: MINING: restore txs[%d]: %s", len(trans), err)
		s.mempool.Restore(trans)
		return database.Block{}, err
	}

	// The block is on the ledger, so the ids can leave the in-flight set.
	s.mempool.Commit(trans)

	s.mu.Lock()
	s.totalSupply = s.totalSupply.Add(s.genesis.MiningReward)
	s.mu.Unlock()

	s.evHandler("%s block: %s", ViewerPrefix, blockEvent(block))

	if s.mempool.Count() > 0 {
		s.Worker.SignalStartMining()
	}

	return block, nil
}

// sealAndAppend performs the proof of work over the batch and appends the
// block. A stale parent is retried against the new latest block.
func (s *State) sealAndAppend(ctx context.Context, minerAddress string, trans []database.Tx) (database.Block, error) {
	var err error
	for attempt := 1; attempt <= appendAttempts; attempt++ {
		var block database.Block
		block, err = s.sealBlock(ctx, minerAddress, trans)
		if err != nil {
			return database.Block{}, err
		}

		s.evHandler("state: MineNewBlock: MINING: append blk[%d]: attempt[%d]", block.Header.Number, attempt)

		err = s.ledger.Append(block)
		if err == nil {
			return block, nil
		}

		if !errors.Is(err, ledger.ErrChainLinkageViolation) {
			return database.Block{}, err
		}
	}

	return database.Block{}, fmt.Errorf("after %d attempts: %w", appendAttempts, err)
}

// sealBlock builds the candidate block on top of the latest block and solves
// the proof of work. The reward transaction is always last.
func (s *State) sealBlock(ctx context.Context, minerAddress string, trans []database.Tx) (database.Block, error) {
	latest := s.ledger.Latest()
	number := latest.Header.Number + 1

	reward := database.NewRewardTx(number, minerAddress, s.genesis.MiningReward, uint64(time.Now().UTC().UnixMilli()))

	batch := make([]database.Tx, 0, len(trans)+1)
	batch = append(batch, trans...)
	batch = append(batch, reward)

	s.evHandler("state: MineNewBlock: MINING: perform POW: blk[%d]: txs[%d]", number, len(batch))

	block, err := database.POW(ctx, database.POWArgs{
		Beneficiary: minerAddress,
		Difficulty:  s.genesis.Difficulty,
		GasPerTx:    s.genesis.GasPerTx,
		GasLimit:    s.genesis.GasLimit,
		PrevBlock:   latest,
		Trans:       batch,
		EvHandler:   s.evHandler,
	})
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	return block, nil
}
