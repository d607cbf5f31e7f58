// Copyright 2017 Cameron Bergoon
// https://github.com/cbergoon/merkletree
// Licensed under the MIT License, see LICENCE file for details.

package merkle_test

import (
	"bytes"
	"crypto/md5"
	"crypto/sha256"
	"errors"
	"hash"
	"testing"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/merkle"
)

// Data uses the sha256 hashing algorithm for the merkle tree.
type Data struct {
	x string
}

// Hash hashes the values using sha256.
func (d Data) Hash() ([]byte, error) {
	h := sha256.Sum256([]byte(d.x))
	return h[:], nil
}

// Equals tests for equality of two piece of data.
func (d Data) Equals(other Data) bool {
	return d.x == other.x
}

// =============================================================================

func Test_NewTree(t *testing.T) {
	for _, tst := range table {
		f := func(t *testing.T) {
			tree, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			exp := expectedRoot(tst.data, tst.hashStrategy)
			if !bytes.Equal(tree.MerkleRoot, exp) {
				t.Fatalf("expected root %x, got %x", exp, tree.MerkleRoot)
			}

			if len(tree.Values()) != len(tst.data) {
				t.Fatalf("expected %d values, got %d", len(tst.data), len(tree.Values()))
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_EmptyTree(t *testing.T) {
	if _, err := merkle.NewTree([]Data{}); err == nil {
		t.Fatal("expected an error constructing a tree with no content")
	}
}

func Test_OrderSensitive(t *testing.T) {
	a, err := merkle.NewTree([]Data{{x: "Hello"}, {x: "Hi"}})
	if err != nil {
		t.Fatal(err)
	}

	b, err := merkle.NewTree([]Data{{x: "Hi"}, {x: "Hello"}})
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a.MerkleRoot, b.MerkleRoot) {
		t.Fatal("expected reordered values to produce a different root")
	}

	if a.RootHex()[:2] != "0x" {
		t.Fatalf("expected a 0x prefixed root, got %s", a.RootHex())
	}
}

func Test_Verify(t *testing.T) {
	for _, tst := range table {
		f := func(t *testing.T) {
			tree, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
			if err != nil {
				t.Fatal(err)
			}

			if err := tree.Verify(); err != nil {
				t.Fatalf("expected tree to be valid: %v", err)
			}

			tree.MerkleRoot = []byte{1}
			if err := tree.Verify(); err == nil {
				t.Fatal("expected tree to be invalid")
			}

			if err := tree.Rebuild(); err != nil {
				t.Fatal(err)
			}

			if err := tree.Verify(); err != nil {
				t.Fatalf("expected rebuilt tree to be valid: %v", err)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_VerifyData(t *testing.T) {
	for _, tst := range table {
		f := func(t *testing.T) {
			tree, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
			if err != nil {
				t.Fatal(err)
			}

			for _, d := range tst.data {
				if err := tree.VerifyData(d); err != nil {
					t.Fatalf("expected valid content for %q: %v", d.x, err)
				}
			}

			if err := tree.VerifyData(tst.notInContents); !errors.Is(err, merkle.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			tree.Root.Hash = []byte{1}
			if err := tree.VerifyData(tst.data[0]); err == nil {
				t.Fatal("expected invalid content after corrupting the root")
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_Proof(t *testing.T) {
	for _, tst := range table {
		f := func(t *testing.T) {
			tree, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
			if err != nil {
				t.Fatal(err)
			}

			for _, d := range tst.data {
				proof, order, err := tree.Proof(d)
				if err != nil {
					t.Fatalf("expected a proof for %q: %v", d.x, err)
				}

				hash, _ := d.Hash()
				for k := range proof {
					switch order[k] {
					case 1:
						hash = calHash(append(hash, proof[k]...), tst.hashStrategy)
					default:
						hash = calHash(append(append([]byte{}, proof[k]...), hash...), tst.hashStrategy)
					}
				}

				if !bytes.Equal(tree.MerkleRoot, hash) {
					t.Fatalf("expected proof for %q to produce root %x, got %x", d.x, tree.MerkleRoot, hash)
				}
			}

			if _, _, err := tree.Proof(tst.notInContents); !errors.Is(err, merkle.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		}

		t.Run(tst.name, f)
	}
}

// =============================================================================

func calHash(data []byte, hashStrategy func() hash.Hash) []byte {
	h := hashStrategy()
	h.Write(data)
	return h.Sum(nil)
}

// expectedRoot computes the root by hand, pairing leafs level by level and
// repeating the last node of an odd level.
func expectedRoot(data []Data, hashStrategy func() hash.Hash) []byte {
	var level [][]byte
	for _, d := range data {
		h, _ := d.Hash()
		level = append(level, h)
	}

	if len(level)%2 == 1 {
		level = append(level, level[len(level)-1])
	}

	for {
		var next [][]byte
		for i := 0; i < len(level); i += 2 {
			right := i + 1
			if right == len(level) {
				right = i
			}
			next = append(next, calHash(append(append([]byte{}, level[i]...), level[right]...), hashStrategy))
		}

		if len(next) == 1 {
			return next[0]
		}
		level = next
	}
}

// =============================================================================

var table = []struct {
	name          string
	hashStrategy  func() hash.Hash
	data          []Data
	notInContents Data
}{
	{
		name:          "even-sha256",
		hashStrategy:  sha256.New,
		data:          []Data{{x: "Hello"}, {x: "Hi"}, {x: "Hey"}, {x: "Hola"}},
		notInContents: Data{x: "NotInTestTable"},
	},
	{
		name:          "odd-sha256",
		hashStrategy:  sha256.New,
		data:          []Data{{x: "Hello"}, {x: "Hi"}, {x: "Hey"}},
		notInContents: Data{x: "NotInTestTable"},
	},
	{
		name:          "single",
		hashStrategy:  sha256.New,
		data:          []Data{{x: "Hello"}},
		notInContents: Data{x: "NotInTestTable"},
	},
	{
		name:          "five-md5",
		hashStrategy:  md5.New,
		data:          []Data{{x: "Hello"}, {x: "Hi"}, {x: "Hey"}, {x: "Hola"}, {x: "Ciao"}},
		notInContents: Data{x: "NotInTestTable"},
	},
}
