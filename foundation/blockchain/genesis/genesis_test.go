package genesis_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/genesis"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestLoad(t *testing.T) {
	t.Log("Given the need to load a genesis file.")
	{
		const content = `{
			"date": "2024-01-01T00:00:00.000000000Z",
			"chain_id": 7,
			"trans_per_block": 5,
			"difficulty": 2,
			"mining_reward": "12.5",
			"gas_per_tx": 10,
			"gas_limit": 100,
			"founder": "kyc-authority",
			"initial_supply": "1000"
		}`

		path := filepath.Join(t.TempDir(), "genesis.json")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("\t%s\tShould be able to write the file: %v", failed, err)
		}

		g, err := genesis.Load(path)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the file: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the file.", success)

		if g.ChainID != 7 || g.Difficulty != 2 {
			t.Fatalf("\t%s\tShould read the chain values: %+v", failed, g)
		}
		t.Logf("\t%s\tShould read the chain values.", success)

		if !g.MiningReward.Equal(decimal.RequireFromString("12.5")) {
			t.Fatalf("\t%s\tShould read a fractional reward: got %s", failed, g.MiningReward)
		}
		t.Logf("\t%s\tShould read a fractional reward.", success)
	}
}

func TestValidate(t *testing.T) {
	type table struct {
		name   string
		modify func(g *genesis.Genesis)
		valid  bool
	}

	tt := []table{
		{name: "default", modify: func(g *genesis.Genesis) {}, valid: true},
		{name: "no-trans", modify: func(g *genesis.Genesis) { g.TransPerBlock = 0 }},
		{name: "difficulty", modify: func(g *genesis.Genesis) { g.Difficulty = 65 }},
		{name: "neg-reward", modify: func(g *genesis.Genesis) { g.MiningReward = decimal.NewFromInt(-1) }},
		{name: "no-founder", modify: func(g *genesis.Genesis) { g.Founder = "" }},
		{name: "gas", modify: func(g *genesis.Genesis) { g.GasLimit = g.GasPerTx }},
		{name: "gas-overflow", modify: func(g *genesis.Genesis) { g.GasPerTx = math.MaxUint64/2 + 1; g.GasLimit = math.MaxUint64 - 1 }},
	}

	t.Log("Given the need to reject unusable genesis values.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				g := genesis.Default()
				tst.modify(&g)

				err := g.Validate()
				if (err == nil) != tst.valid {
					t.Fatalf("\t%s\tTest %d:\tShould get valid=%v: err %v", failed, testID, tst.valid, err)
				}
				t.Logf("\t%s\tTest %d:\tShould get valid=%v.", success, testID, tst.valid)
			}

			t.Run(tst.name, f)
		}
	}
}

func TestMaxTransPerBlock(t *testing.T) {
	t.Log("Given the need to size a block batch.")
	{
		g := genesis.Default()
		if got := g.MaxTransPerBlock(); got != 10 {
			t.Fatalf("\t%s\tShould be limited by trans_per_block: got %d", failed, got)
		}
		t.Logf("\t%s\tShould be limited by trans_per_block.", success)

		g.GasLimit = g.GasPerTx * 4
		if got := g.MaxTransPerBlock(); got != 3 {
			t.Fatalf("\t%s\tShould leave room for the reward: got %d", failed, got)
		}
		t.Logf("\t%s\tShould leave room for the reward.", success)
	}
}
