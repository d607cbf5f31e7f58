package commands

import (
	"github.com/pterm/pterm"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/ledger"
)

// Reset removes every block from the store. The node seeds genesis again on
// the next start.
func Reset(strg ledger.Storage) error {
	if err := strg.Reset(); err != nil {
		return err
	}

	pterm.Success.Println("store reset")

	return nil
}
