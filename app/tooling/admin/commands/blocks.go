// Package commands contains the functionality for the admin tool.
package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/state"
)

// Blocks prints the stored blocks. With a block number only that block and
// its transactions are printed.
func Blocks(number string, st *state.State) error {
	if number != "" {
		num, err := strconv.ParseUint(number, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing block number: %w", err)
		}

		blk, err := st.QueryBlock(num)
		if err != nil {
			return err
		}

		return printTxs(blk)
	}

	data := pterm.TableData{
		{"Number", "Hash", "Nonce", "Txs", "Beneficiary", "Mined"},
	}
	for _, blk := range st.QueryBlocks() {
		data = append(data, []string{
			strconv.FormatUint(blk.Header.Number, 10),
			blk.Hash(),
			humanize.Comma(int64(blk.Header.Nonce)),
			strconv.Itoa(len(blk.Values())),
			blk.Header.Beneficiary,
			humanize.Time(time.UnixMilli(int64(blk.Header.TimeStamp))),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printTxs(blk database.Block) error {
	pterm.Info.Printfln("block %d: %s", blk.Header.Number, blk.Hash())

	data := pterm.TableData{
		{"ID", "Kind", "From", "To", "Amount", "Fee", "Data"},
	}
	for _, tx := range blk.Values() {
		data = append(data, []string{tx.ID, tx.Kind, tx.From, tx.To, tx.Amount.String(), tx.Fee.String(), tx.Data})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
