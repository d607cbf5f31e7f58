package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/signature"
	"github.com/shopspring/decimal"
)

// ErrInvalidTransaction is returned when a transaction is malformed or was
// already submitted. Such transactions are rejected before admission.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Set of transaction kinds.
const (
	TxKindTransfer = "transfer"
	TxKindReward   = "reward"
	TxKindGenesis  = "genesis"
)

// Fixed values for the transactions the ledger creates itself.
const (
	NetworkAddress  = "network"
	RewardSignature = "reward"
)

// =============================================================================

// Tx is the transactional information between two parties that is anchored
// on the ledger.
type Tx struct {
	ID        string          `json:"id"`        // Content derived identity, detects resubmissions.
	Kind      string          `json:"kind"`      // Transfer, reward or genesis.
	From      string          `json:"from"`      // Opaque address of the sender.
	To        string          `json:"to"`        // Opaque address of the receiver.
	Amount    decimal.Decimal `json:"amount"`    // Value transferred.
	Fee       decimal.Decimal `json:"fee"`       // Offered to the miner, drives selection priority.
	Data      string          `json:"data"`      // Opaque payload, hashed but never interpreted.
	TimeStamp uint64          `json:"timestamp"` // Client creation time in milliseconds.
	Signature string          `json:"signature"` // Opaque provenance token.
}

// NewTx constructs a new transfer transaction and derives its id. A zero
// timestamp is stamped with the current time.
func NewTx(from string, to string, amount decimal.Decimal, fee decimal.Decimal, data string, timeStamp uint64, sig string) Tx {
	if timeStamp == 0 {
		timeStamp = uint64(time.Now().UTC().UnixMilli())
	}

	tx := Tx{
		Kind:      TxKindTransfer,
		From:      from,
		To:        to,
		Amount:    amount,
		Fee:       fee,
		Data:      data,
		TimeStamp: timeStamp,
		Signature: sig,
	}
	tx.ID = tx.ComputeID()

	return tx
}

// NewRewardTx constructs the transaction crediting the miner of the
// specified block number.
func NewRewardTx(number uint64, beneficiary string, reward decimal.Decimal, timeStamp uint64) Tx {
	tx := Tx{
		Kind:      TxKindReward,
		From:      NetworkAddress,
		To:        beneficiary,
		Amount:    reward,
		Fee:       decimal.Zero,
		Data:      fmt.Sprintf("block:%d", number),
		TimeStamp: timeStamp,
		Signature: RewardSignature,
	}
	tx.ID = tx.ComputeID()

	return tx
}

// ComputeID derives the identity of the transaction from its content. The
// signature is not part of the identity so a re-signed copy is still a
// duplicate.
func (tx Tx) ComputeID() string {
	content := struct {
		Kind      string `json:"kind"`
		From      string `json:"from"`
		To        string `json:"to"`
		Amount    string `json:"amount"`
		Fee       string `json:"fee"`
		Data      string `json:"data"`
		TimeStamp uint64 `json:"timestamp"`
	}{
		Kind:      tx.Kind,
		From:      tx.From,
		To:        tx.To,
		Amount:    tx.Amount.String(),
		Fee:       tx.Fee.String(),
		Data:      tx.Data,
		TimeStamp: tx.TimeStamp,
	}

	return signature.Hash(content)
}

// Validate checks the transaction can be admitted into the mempool.
func (tx Tx) Validate() error {
	switch {
	case tx.Kind != TxKindTransfer:
		return fmt.Errorf("%w: kind %q can't be submitted", ErrInvalidTransaction, tx.Kind)
	case tx.From == "":
		return fmt.Errorf("%w: from address is required", ErrInvalidTransaction)
	case tx.To == "":
		return fmt.Errorf("%w: to address is required", ErrInvalidTransaction)
	case tx.Amount.IsNegative():
		return fmt.Errorf("%w: amount %s is negative", ErrInvalidTransaction, tx.Amount)
	case tx.Fee.IsNegative():
		return fmt.Errorf("%w: fee %s is negative", ErrInvalidTransaction, tx.Fee)
	case tx.Signature == "":
		return fmt.Errorf("%w: signature is required", ErrInvalidTransaction)
	case tx.ID != tx.ComputeID():
		return fmt.Errorf("%w: id does not match content", ErrInvalidTransaction)
	}

	return nil
}

// IsReward tests if the transaction is the miner reward of a block.
func (tx Tx) IsReward() bool {
	return tx.Kind == TxKindReward
}

// Hash implements the merkle Hashable interface for providing a hash
// of a transaction. Every field takes part, so any alteration changes
// the merkle root of the block holding it.
func (tx Tx) Hash() ([]byte, error) {
	return signature.HashBytes(tx)
}

// Equals implements the merkle Hashable interface for providing an equality
// check between two transactions.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx.ID == otherTx.ID
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	id := tx.ID
	if len(id) > 10 {
		id = id[:10]
	}

	return fmt.Sprintf("%s:%s->%s:%s", id, tx.From, tx.To, tx.Amount)
}
