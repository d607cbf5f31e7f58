package commands

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/state"
)

// Validate walks the stored chain and reports the first violation.
func Validate(st *state.State) error {
	v := st.ValidateChain()
	if v.IsValid {
		pterm.Success.Printfln("chain of %d blocks is valid", len(st.QueryBlocks()))
		return nil
	}

	pterm.Error.Println(v.FirstViolation.Error())

	return errors.New("chain is invalid")
}
