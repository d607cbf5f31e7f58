package state

import (
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
)

// Validation is the result of walking the chain.
type Validation struct {
	IsValid        bool                `json:"isValid"`
	FirstViolation *database.Violation `json:"firstViolation,omitempty"`
}

// ValidateChain walks a snapshot of the ledger from genesis to the latest
// block and reports the first block breaking an integrity rule.
func (s *State) ValidateChain() Validation {
	return s.validateBlocks(s.ledger.Snapshot().Blocks)
}

func (s *State) validateBlocks(blocks []database.Block) Validation {
	s.evHandler("state: ValidateChain: started: blocks[%d]", len(blocks))

	for i, block := range blocks {
		if i == 0 {
			if v := block.ValidateGenesis(s.evHandler); v != nil {
				return invalid(v)
			}
			continue
		}

		if v := block.ValidateBlock(blocks[i-1], s.evHandler); v != nil {
			return invalid(v)
		}

		// The header states its own difficulty, so it can't be lower than
		// the one the chain was started with.
		if block.Header.Difficulty < s.genesis.Difficulty {
			return invalid(&database.Violation{
				Index:  block.Header.Number,
				Kind:   database.ViolationDifficulty,
				Detail: "difficulty is below the chain difficulty",
			})
		}
	}

	s.evHandler("state: ValidateChain: completed: valid")

	return Validation{IsValid: true}
}

func invalid(v *database.Violation) Validation {
	return Validation{
		IsValid:        false,
		FirstViolation: v,
	}
}
