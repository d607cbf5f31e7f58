package worker_test

import (
	"testing"
	"time"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/genesis"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/state"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/storage/memory"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/worker"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_AutoMine(t *testing.T) {
	t.Log("Given the need to mine submitted transactions automatically.")
	{
		g := genesis.Default()
		g.Difficulty = 1
		g.TransPerBlock = 2

		st, err := state.New(state.Config{
			MinerAddress:   "miner1",
			Genesis:        g,
			Storage:        memory.New(),
			SelectStrategy: "fifo",
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
		}

		worker.Run(st, nil)
		defer st.Shutdown()

		for i := 0; i < 5; i++ {
			tx := database.NewTx("alice", "bob", decimal.NewFromInt(1), decimal.Zero, "kyc", uint64(i+1), "sig")
			if _, err := st.SubmitTransaction(tx); err != nil {
				t.Fatalf("\t%s\tShould be able to submit tx %d: %v", failed, i, err)
			}
		}

		deadline := time.Now().Add(10 * time.Second)
		for st.QueryMempoolLength() > 0 || st.IsMining() {
			if time.Now().After(deadline) {
				t.Fatalf("\t%s\tShould drain the mempool: pending %d", failed, st.QueryMempoolLength())
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Logf("\t%s\tShould drain the mempool.", success)

		var mined int
		for _, block := range st.QueryBlocks()[1:] {
			mined += len(block.Values()) - 1
		}

		if mined != 5 {
			t.Fatalf("\t%s\tShould mine all 5 transactions: got %d", failed, mined)
		}
		t.Logf("\t%s\tShould mine all 5 transactions.", success)

		if v := st.ValidateChain(); !v.IsValid {
			t.Fatalf("\t%s\tShould produce a valid chain: %v", failed, v.FirstViolation)
		}
		t.Logf("\t%s\tShould produce a valid chain.", success)
	}
}
