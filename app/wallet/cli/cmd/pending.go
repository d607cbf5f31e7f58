package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Print the mempool in selection order",
	RunE:  pendingRun,
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}

func pendingRun(cmd *cobra.Command, args []string) error {
	var txs []tx
	if err := call(http.MethodGet, "/ledger/tx/pending", nil, &txs); err != nil {
		return err
	}

	printTxs(txs)

	return nil
}
