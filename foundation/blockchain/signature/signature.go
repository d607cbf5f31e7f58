// Package signature provides helper functions for handling the ledger
// hashing and provenance signature needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros. It is the previous block hash
// of the genesis block.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns a unique string for the value. The value is marshaled to JSON
// so struct field order defines the canonical form.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// HashBytes returns the raw sha256 digest of the JSON form of the value.
func HashBytes(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(data)
	return hash[:], nil
}

// LeadingZeros reports whether the hex encoded hash has the specified number
// of leading zero digits after the 0x prefix.
func LeadingZeros(hash string, difficulty uint) bool {
	digits := strings.TrimPrefix(hash, "0x")
	if len(digits) != 64 || int(difficulty) > len(digits) {
		return false
	}

	for i := range int(difficulty) {
		if digits[i] != '0' {
			return false
		}
	}

	return true
}

// =============================================================================

// Sign uses the specified private key to produce a provenance token for the
// value. The ledger stores the token as an opaque string, verification is the
// business of the parties that exchange it.
func Sign(value any, privateKey *ecdsa.PrivateKey) (string, error) {
	data, err := stamp(value)
	if err != nil {
		return "", err
	}

	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return "", err
	}

	return hexutil.Encode(sig), nil
}

// FromAddress extracts the address of the key that produced the provenance
// token for the value.
func FromAddress(value any, token string) (string, error) {
	data, err := stamp(value)
	if err != nil {
		return "", err
	}

	sig, err := hexutil.Decode(token)
	if err != nil {
		return "", fmt.Errorf("decoding token: %w", err)
	}

	if len(sig) != crypto.SignatureLength {
		return "", errors.New("invalid token length")
	}

	publicKey, err := crypto.SigToPub(data, sig)
	if err != nil {
		return "", err
	}

	return crypto.PubkeyToAddress(*publicKey).String(), nil
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents this data with
// the ledger stamp embedded into the final hash.
func stamp(value any) ([]byte, error) {
	v, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	txHash := crypto.Keccak256(v)

	// The stamp keeps tokens produced for the ledger from being replayed
	// as signatures over other kinds of messages.
	stamp := []byte("\x19KYC Ledger Signed Message:\n32")

	return crypto.Keccak256(stamp, txHash), nil
}
