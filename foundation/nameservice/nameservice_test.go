package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/nameservice"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestLookup(t *testing.T) {
	t.Log("Given the need to name addresses from a folder of keys.")
	{
		root := t.TempDir()

		privateKey, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a key: %v", failed, err)
		}

		if err := crypto.SaveECDSA(filepath.Join(root, "kyc-bank.ecdsa"), privateKey); err != nil {
			t.Fatalf("\t%s\tShould be able to save the key: %v", failed, err)
		}

		ns, err := nameservice.New(root)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to build the name service: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to build the name service.", success)

		address := crypto.PubkeyToAddress(privateKey.PublicKey).String()
		if got := ns.Lookup(address); got != "kyc-bank" {
			t.Fatalf("\t%s\tShould find the key name: got %q", failed, got)
		}
		t.Logf("\t%s\tShould find the key name.", success)

		if got := ns.Lookup("unknown"); got != "unknown" {
			t.Fatalf("\t%s\tShould echo unknown addresses: got %q", failed, got)
		}
		t.Logf("\t%s\tShould echo unknown addresses.", success)

		if n := len(ns.Copy()); n != 1 {
			t.Fatalf("\t%s\tShould copy one entry: got %d", failed, n)
		}
		t.Logf("\t%s\tShould copy one entry.", success)
	}
}

func TestMissingRoot(t *testing.T) {
	t.Log("Given the need to run without any keys.")
	{
		ns, err := nameservice.New(filepath.Join(t.TempDir(), "none"))
		if err != nil {
			t.Fatalf("\t%s\tShould accept a missing folder: %v", failed, err)
		}

		if got := ns.Lookup("miner1"); got != "miner1" {
			t.Fatalf("\t%s\tShould echo the address: got %q", failed, got)
		}
		t.Logf("\t%s\tShould accept a missing folder.", success)
	}
}
