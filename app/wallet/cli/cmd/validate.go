package cmd

import (
	"errors"
	"net/http"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the chain held by the node",
	RunE:  validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) error {
	var v validation
	if err := call(http.MethodGet, "/ledger/validate", nil, &v); err != nil {
		return err
	}

	if v.IsValid {
		pterm.Success.Println("chain is valid")
		return nil
	}

	if v.FirstViolation != nil {
		pterm.Error.Printfln("block %d: %s: %s", v.FirstViolation.Index, v.FirstViolation.Kind, v.FirstViolation.Detail)
	}

	return errors.New("chain is invalid")
}
