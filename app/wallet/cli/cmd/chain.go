package cmd

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/nameservice"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the blocks of the chain",
	RunE:  chainRun,
}

var blockCmd = &cobra.Command{
	Use:   "block <number>",
	Short: "Print a block and its transactions",
	Args:  cobra.ExactArgs(1),
	RunE:  blockRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(blockCmd)
}

func chainRun(cmd *cobra.Command, args []string) error {
	var blocks []block
	if err := call(http.MethodGet, "/ledger/blocks", nil, &blocks); err != nil {
		return err
	}

	ns, err := nameservice.New(accountPath)
	if err != nil {
		return err
	}

	data := pterm.TableData{
		{"Index", "Hash", "Previous", "Nonce", "Txs", "Validator", "Time"},
	}
	for _, blk := range blocks {
		data = append(data, []string{
			strconv.FormatUint(blk.Index, 10),
			short(blk.Hash),
			short(blk.PreviousHash),
			strconv.FormatUint(blk.Nonce, 10),
			strconv.Itoa(len(blk.Transactions)),
			ns.Lookup(blk.Validator),
			stamp(blk.TimeStamp),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func blockRun(cmd *cobra.Command, args []string) error {
	var blk block
	if err := call(http.MethodGet, "/ledger/blocks/"+args[0], nil, &blk); err != nil {
		return err
	}

	printBlock(blk)

	return nil
}

// =============================================================================

func printBlock(blk block) {
	header := pterm.Sprintfln("Index:      %d", blk.Index) +
		pterm.Sprintfln("Hash:       %s", blk.Hash) +
		pterm.Sprintfln("Previous:   %s", blk.PreviousHash) +
		pterm.Sprintfln("MerkleRoot: %s", blk.MerkleRoot) +
		pterm.Sprintfln("Nonce:      %d", blk.Nonce) +
		pterm.Sprintfln("Difficulty: %d", blk.Difficulty) +
		pterm.Sprintfln("Gas:        %d / %d", blk.GasUsed, blk.GasLimit) +
		pterm.Sprintfln("Validator:  %s", blk.Validator) +
		pterm.Sprintf("Time:       %s", stamp(blk.TimeStamp))

	pterm.DefaultBox.WithTitle(fmt.Sprintf("Block %d", blk.Index)).Println(header)

	printTxs(blk.Transactions)
}

func printTxs(txs []tx) {
	if len(txs) == 0 {
		pterm.Info.Println("no transactions")
		return
	}

	ns, err := nameservice.New(accountPath)
	if err != nil {
		pterm.Warning.Println(err)
		ns, _ = nameservice.New("")
	}

	data := pterm.TableData{
		{"ID", "Kind", "From", "To", "Amount", "Fee", "Data"},
	}
	for _, t := range txs {
		data = append(data, []string{short(t.ID), t.Kind, ns.Lookup(t.From), ns.Lookup(t.To), t.Amount.String(), t.Fee.String(), t.Data})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func short(hash string) string {
	if len(hash) <= 18 {
		return hash
	}
	return hash[:10] + ".." + hash[len(hash)-6:]
}

func stamp(ms uint64) string {
	return time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339)
}
