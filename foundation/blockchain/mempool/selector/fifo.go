package selector

import (
	"sort"
)

// fifoSelect returns transactions in the order they were admitted.
var fifoSelect = func(pending []Pending, howMany int) []Pending {
	sorted := make([]Pending, len(pending))
	copy(sorted, pending)

	sort.Sort(byArrival(sorted))

	return take(sorted, howMany)
}
