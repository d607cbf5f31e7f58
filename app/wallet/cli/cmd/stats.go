package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the ledger statistics",
	RunE:  statsRun,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func statsRun(cmd *cobra.Command, args []string) error {
	var s stats
	if err := call(http.MethodGet, "/ledger/stats", nil, &s); err != nil {
		return err
	}

	data := pterm.TableData{
		{"Metric", "Value"},
		{"Blocks", strconv.Itoa(s.TotalBlocks)},
		{"Transactions", strconv.Itoa(s.TotalTransactions)},
		{"Pending", strconv.Itoa(s.PendingTransactions)},
		{"Total Supply", s.TotalSupply.String()},
		{"Difficulty", strconv.FormatUint(uint64(s.Difficulty), 10)},
		{"Mining Reward", s.MiningReward.String()},
		{"Avg Block Time", fmt.Sprintf("%.2fs", s.AverageBlockTime)},
		{"Hash Rate", s.NetworkHashRate},
		{"Addresses", strconv.Itoa(s.UniqueAddresses)},
		{"Latest Hash", s.LatestBlockHash},
		{"Valid", strconv.FormatBool(s.IsValid)},
		{"Mining", strconv.FormatBool(s.IsMining)},
	}

	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}
