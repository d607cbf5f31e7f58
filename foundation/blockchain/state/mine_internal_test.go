package state

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/genesis"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/storage/memory"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const performPOW = "state: MineNewBlock: MINING: perform POW"

func mineTestState(t *testing.T, ev EventHandler) *State {
	t.Helper()

	g := genesis.Default()
	g.Difficulty = 1

	s, err := New(Config{
		MinerAddress:   "miner1",
		Genesis:        g,
		Storage:        memory.New(),
		SelectStrategy: "fee",
		EvHandler:      ev,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}

	return s
}

func kycTx(from string, ts uint64) database.Tx {
	return database.NewTx(from, "kyc-registry", decimal.NewFromInt(1), decimal.NewFromInt(1), "kyc:"+from, ts, "sig-"+from)
}

func Test_MineRetriesOnNewTip(t *testing.T) {
	t.Log("Given the need to mine on top of a block appended during the search.")
	{
		var s *State
		var raced atomic.Bool
		var raceErr error

		ev := func(v string, args ...any) {
			if !strings.HasPrefix(v, performPOW) || !raced.CompareAndSwap(false, true) {
				return
			}

			rival, err := s.sealBlock(context.Background(), "rival", []database.Tx{kycTx("carol", 99)})
			if err != nil {
				raceErr = err
				return
			}
			raceErr = s.ledger.Append(rival)
		}

		s = mineTestState(t, ev)
		defer s.Shutdown()

		if _, err := s.SubmitTransaction(kycTx("alice", 1)); err != nil {
			t.Fatalf("\t%s\tShould be able to submit: %v", failed, err)
		}

		block, err := s.MineNewBlock(context.Background(), "")
		if err != nil {
			t.Fatalf("\t%s\tShould mine after the tip moved: %v", failed, err)
		}
		t.Logf("\t%s\tShould mine after the tip moved.", success)

		if raceErr != nil {
			t.Fatalf("\t%s\tShould append the competing block: %v", failed, raceErr)
		}

		if block.Header.Number != 2 {
			t.Fatalf("\t%s\tShould land at block 2: got %d", failed, block.Header.Number)
		}
		t.Logf("\t%s\tShould land at block 2.", success)

		if n := s.ledger.Len(); n != 3 {
			t.Fatalf("\t%s\tShould hold 3 blocks: got %d", failed, n)
		}
		if prev := s.ledger.Latest().Header.PrevBlockHash; prev != blockAt(t, s, 1).Hash() {
			t.Fatalf("\t%s\tShould link to the competing block: got %s", failed, prev)
		}
		t.Logf("\t%s\tShould link to the competing block.", success)

		if n := s.QueryMempoolLength(); n != 0 {
			t.Fatalf("\t%s\tShould leave the mempool empty: got %d", failed, n)
		}
		if v := s.ValidateChain(); !v.IsValid {
			t.Fatalf("\t%s\tShould validate the chain: %v", failed, v.FirstViolation)
		}
		t.Logf("\t%s\tShould leave a valid chain and an empty mempool.", success)
	}
}

func Test_MineCancelRestores(t *testing.T) {
	t.Log("Given the need to keep transactions when mining is cancelled.")
	{
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		tx := kycTx("alice", 1)

		var s *State
		var dupErr error
		hidden := -1

		ev := func(v string, args ...any) {
			if !strings.HasPrefix(v, performPOW) {
				return
			}

			_, dupErr = s.mempool.Submit(tx)
			hidden = len(s.QueryMempool())
			cancel()
		}

		s = mineTestState(t, ev)
		defer s.Shutdown()

		if _, err := s.SubmitTransaction(tx); err != nil {
			t.Fatalf("\t%s\tShould be able to submit: %v", failed, err)
		}

		_, err := s.MineNewBlock(ctx, "")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("\t%s\tShould return the cancellation: got %v", failed, err)
		}
		t.Logf("\t%s\tShould return the cancellation.", success)

		if !errors.Is(dupErr, database.ErrInvalidTransaction) {
			t.Fatalf("\t%s\tShould reject a resubmission while mining: got %v", failed, dupErr)
		}
		if hidden != 0 {
			t.Fatalf("\t%s\tShould not list the drained transaction while mining: got %d", failed, hidden)
		}
		t.Logf("\t%s\tShould hold the drained transaction in flight.", success)

		pending := s.QueryMempool()
		if len(pending) != 1 || pending[0].ID != tx.ID {
			t.Fatalf("\t%s\tShould restore the transaction: got %v", failed, pending)
		}
		t.Logf("\t%s\tShould restore the transaction.", success)

		if s.IsMining() {
			t.Fatalf("\t%s\tShould clear the mining flag.", failed)
		}
		if n := s.ledger.Len(); n != 1 {
			t.Fatalf("\t%s\tShould leave only genesis: got %d", failed, n)
		}
		t.Logf("\t%s\tShould clear the mining flag and leave the chain unchanged.", success)

		if _, err := s.MineNewBlock(context.Background(), ""); err != nil {
			t.Fatalf("\t%s\tShould mine the restored transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould mine the restored transaction.", success)
	}
}

func blockAt(t *testing.T, s *State, number uint64) database.Block {
	t.Helper()

	block, err := s.ledger.At(number)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to read block %d: %v", failed, number, err)
	}

	return block
}
