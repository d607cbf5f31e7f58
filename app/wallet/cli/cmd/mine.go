package cmd

import (
	"net/http"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var minerAddress string

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the pending transactions into a new block",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&minerAddress, "miner", "m", "", "Address credited with the reward, defaults to the node miner.")
}

func mineRun(cmd *cobra.Command, args []string) error {
	req := struct {
		MinerAddress string `json:"minerAddress"`
	}{
		MinerAddress: minerAddress,
	}

	spinner, _ := pterm.DefaultSpinner.Start("mining")

	var blk block
	if err := call(http.MethodPost, "/ledger/mine", req, &blk); err != nil {
		spinner.Fail(err.Error())
		return err
	}

	spinner.Success("block mined")
	printBlock(blk)

	return nil
}
