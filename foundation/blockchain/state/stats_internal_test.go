package state

import (
	"testing"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
)

func blocksAt(timeStamps ...uint64) []database.Block {
	blocks := make([]database.Block, len(timeStamps))
	for i, ts := range timeStamps {
		blocks[i].Header.Number = uint64(i)
		blocks[i].Header.TimeStamp = ts
	}

	return blocks
}

func Test_AverageBlockTime(t *testing.T) {
	type table struct {
		name   string
		blocks []database.Block
		avg    float64
	}

	tt := []table{
		{name: "genesis", blocks: blocksAt(0), avg: 0},
		{name: "one", blocks: blocksAt(0, 900_000), avg: 0},
		{name: "two", blocks: blocksAt(0, 900_000, 902_000), avg: 2},
		{name: "many", blocks: blocksAt(0, 900_000, 901_000, 904_000, 906_000), avg: 2},
	}

	t.Log("Given the need to average the time between blocks.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				got := averageBlockTime(tst.blocks)
				if got != tst.avg {
					t.Fatalf("\t%s\tTest %d:\tShould get %v: got %v", "\u2717", testID, tst.avg, got)
				}
				t.Logf("\t%s\tTest %d:\tShould get %v.", "\u2713", testID, tst.avg)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_AverageBlockTimeWindow(t *testing.T) {
	t.Log("Given the need to only average the recent blocks.")
	{
		ts := []uint64{0, 100_000}
		for i := 0; i < 20; i++ {
			step := uint64(1_000)
			if i >= 10 {
				step = 4_000
			}
			ts = append(ts, ts[len(ts)-1]+step)
		}

		if got := averageBlockTime(blocksAt(ts...)); got != 4 {
			t.Fatalf("\t%s\tShould average the last %d intervals: got %v", "\u2717", blockTimeWindow, got)
		}
		t.Logf("\t%s\tShould average the last %d intervals.", "\u2713", blockTimeWindow)
	}
}

func Test_HashRate(t *testing.T) {
	t.Log("Given the need to estimate the network hash rate.")
	{
		if got := hashRate(4, 0); got != "0 H/s" {
			t.Fatalf("\t%s\tShould report zero without samples: got %s", "\u2717", got)
		}
		t.Logf("\t%s\tShould report zero without samples.", "\u2713")

		if got := hashRate(3, 2); got != "2 kH/s" {
			t.Fatalf("\t%s\tShould report 16^3/2 as 2 kH/s: got %s", "\u2717", got)
		}
		t.Logf("\t%s\tShould report 16^3/2 as 2 kH/s.", "\u2713")
	}
}
