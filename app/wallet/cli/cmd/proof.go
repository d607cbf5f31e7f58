package cmd

import (
	"net/http"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var proofCmd = &cobra.Command{
	Use:   "proof <txid>",
	Short: "Print the merkle inclusion proof for a mined transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  proofRun,
}

func init() {
	rootCmd.AddCommand(proofCmd)
}

func proofRun(cmd *cobra.Command, args []string) error {
	var p proof
	if err := call(http.MethodGet, "/ledger/tx/"+args[0]+"/proof", nil, &p); err != nil {
		return err
	}

	pterm.Info.Printfln("transaction %s in block %d", p.Tx.ID, p.BlockNumber)
	pterm.Info.Printfln("block hash  %s", p.BlockHash)
	pterm.Info.Printfln("merkle root %s", p.MerkleRoot)

	data := pterm.TableData{
		{"Step", "Hash", "Side"},
	}
	for i, h := range p.Hashes {
		side := "right"
		if p.Order[i] == 0 {
			side = "left"
		}
		data = append(data, []string{pterm.Sprint(i), h, side})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
