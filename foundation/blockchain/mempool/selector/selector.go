// Package selector provides different transaction selecting algorithms.
package selector

import (
	"fmt"
	"strings"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
)

// List of different select strategies.
const (
	StrategyFee  = "fee"
	StrategyFIFO = "fifo"
)

// Map of different select strategies with functions.
var strategies = map[string]Func{
	StrategyFee:  feeSelect,
	StrategyFIFO: fifoSelect,
}

// Pending is a transaction waiting in the mempool together with the order
// in which it was admitted.
type Pending struct {
	Tx      database.Tx
	Arrival uint64
}

// Func defines a function that takes the pending transactions and selects
// howMany of them in an order based on the function's strategy. Receiving -1
// for howMany must return all the transactions in the strategy's ordering.
// The ordering must be deterministic for the same input.
type Func func(pending []Pending, howMany int) []Pending

// Retrieve returns the specified select strategy function.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strings.ToLower(strategy)]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}
	return fn, nil
}

// =============================================================================

// byArrival provides sorting support by the admission order.
type byArrival []Pending

// Len returns the number of transactions in the list.
func (ba byArrival) Len() int {
	return len(ba)
}

// Less helps to sort the list by arrival in ascending order.
func (ba byArrival) Less(i, j int) bool {
	return ba[i].Arrival < ba[j].Arrival
}

// Swap moves transactions in the order of arrival.
func (ba byArrival) Swap(i, j int) {
	ba[i], ba[j] = ba[j], ba[i]
}

// =============================================================================

// byFee provides sorting support by the transaction fee value.
type byFee []Pending

// Len returns the number of transactions in the list.
func (bf byFee) Len() int {
	return len(bf)
}

// Less helps to sort the list by fee in descending order to pick the
// transactions that provide the best reward. Ties go to the earlier arrival.
func (bf byFee) Less(i, j int) bool {
	switch bf[i].Tx.Fee.Cmp(bf[j].Tx.Fee) {
	case 1:
		return true
	case -1:
		return false
	}
	return bf[i].Arrival < bf[j].Arrival
}

// Swap moves transactions in the order of the fee value.
func (bf byFee) Swap(i, j int) {
	bf[i], bf[j] = bf[j], bf[i]
}

// =============================================================================

// take returns the first howMany entries, all of them for -1.
func take(pending []Pending, howMany int) []Pending {
	if howMany < 0 || howMany > len(pending) {
		howMany = len(pending)
	}

	return pending[:howMany]
}
