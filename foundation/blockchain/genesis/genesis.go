// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time       `json:"date"`
	ChainID       uint16          `json:"chain_id"`        // The chain id represents an unique id for this running instance.
	TransPerBlock uint16          `json:"trans_per_block"` // The maximum number of client transactions that can be in a block.
	Difficulty    uint            `json:"difficulty"`      // Number of leading zero hex digits a block hash needs.
	MiningReward  decimal.Decimal `json:"mining_reward"`   // Reward credited to the miner of each block.
	GasPerTx      uint64          `json:"gas_per_tx"`      // Gas charged for each transaction in a block.
	GasLimit      uint64          `json:"gas_limit"`       // Maximum gas a block can use.
	Founder       string          `json:"founder"`         // Address receiving the initial supply.
	InitialSupply decimal.Decimal `json:"initial_supply"`  // Supply seeded by the genesis block.
}

// Default returns the genesis values used when no genesis file is provided.
func Default() Genesis {
	return Genesis{
		Date:          time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainID:       1,
		TransPerBlock: 10,
		Difficulty:    4,
		MiningReward:  decimal.NewFromInt(50),
		GasPerTx:      21_000,
		GasLimit:      21_000 * 100,
		Founder:       "kyc-authority",
		InitialSupply: decimal.NewFromInt(1_000_000),
	}
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file: %w", err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the genesis values are usable for mining.
func (g Genesis) Validate() error {
	switch {
	case g.TransPerBlock == 0:
		return errors.New("genesis: trans_per_block must be greater than zero")
	case g.Difficulty > 64:
		return fmt.Errorf("genesis: difficulty %d exceeds the hash length", g.Difficulty)
	case g.MiningReward.IsNegative():
		return errors.New("genesis: mining_reward must not be negative")
	case g.InitialSupply.IsNegative():
		return errors.New("genesis: initial_supply must not be negative")
	case g.InitialSupply.IsPositive() && g.Founder == "":
		return errors.New("genesis: founder is required with an initial supply")
	case g.GasLimit/2 < g.GasPerTx:
		return fmt.Errorf("genesis: gas_limit %d can't hold a transaction and the reward", g.GasLimit)
	}

	return nil
}

// MaxTransPerBlock returns the number of client transactions a block can
// carry so the reward transaction still fits into the gas limit.
func (g Genesis) MaxTransPerBlock() int {
	n := int(g.TransPerBlock)
	if g.GasPerTx == 0 {
		return n
	}

	if byGas := int(g.GasLimit/g.GasPerTx) - 1; byGas < n {
		return byGas
	}

	return n
}
