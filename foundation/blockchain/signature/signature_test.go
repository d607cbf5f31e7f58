package signature_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/signature"
)

const (
	pkHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	from     = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
)

// =============================================================================

func Test_Signing(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	token, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	addr, err := signature.FromAddress(value, token)
	if err != nil {
		t.Fatalf("Should be able to generate from address: %s", err)
	}

	if from != addr {
		t.Logf("got: %s", addr)
		t.Logf("exp: %s", from)
		t.Fatalf("Should get back the right address.")
	}

	other := struct {
		Name string
	}{
		Name: "Ale",
	}

	addr, err = signature.FromAddress(other, token)
	if err == nil && addr == from {
		t.Fatalf("Should not recover the signer for different data.")
	}
}

func Test_Hash(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}

	hash := signature.Hash(value)
	if hash != signature.Hash(value) {
		t.Fatalf("Should get back the same hash twice.")
	}

	if len(hash) != 66 || hash[:2] != "0x" {
		t.Fatalf("Should get back a 0x prefixed 32 byte hex hash: %s", hash)
	}

	value.Name = "Bill "
	if hash == signature.Hash(value) {
		t.Fatalf("Should get back a different hash for different data.")
	}
}

func Test_LeadingZeros(t *testing.T) {
	type table struct {
		name       string
		hash       string
		difficulty uint
		exp        bool
	}

	tt := []table{
		{"zero-difficulty", "0xf000000000000000000000000000000000000000000000000000000000000000", 0, true},
		{"solved", "0x000f000000000000000000000000000000000000000000000000000000000000", 3, true},
		{"unsolved", "0x00f0000000000000000000000000000000000000000000000000000000000000", 3, false},
		{"short", "0x0000", 2, false},
		{"zero-hash", signature.ZeroHash, 64, true},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			got := signature.LeadingZeros(tst.hash, tst.difficulty)
			if got != tst.exp {
				t.Fatalf("got %v, exp %v", got, tst.exp)
			}
		}

		t.Run(tst.name, f)
	}
}
