package selector

import (
	"sort"
)

// feeSelect returns transactions with the best fee first. Transactions
// offering the same fee keep their admission order.
var feeSelect = func(pending []Pending, howMany int) []Pending {
	sorted := make([]Pending, len(pending))
	copy(sorted, pending)

	/*
		Bill: {Fee: 5, Arrival: 3}
		Ale:  {Fee: 1, Arrival: 1}
		Pavl: {Fee: 5, Arrival: 2}
	*/

	sort.Sort(byFee(sorted))

	/*
		Pavl: {Fee: 5, Arrival: 2}
		Bill: {Fee: 5, Arrival: 3}
		Ale:  {Fee: 1, Arrival: 1}
	*/

	return take(sorted, howMany)
}
