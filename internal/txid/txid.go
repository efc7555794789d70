package txid

import "strconv"

// Suffix extracts the trailing run of decimal digits from a transaction ID.
// "TXN-0042" -> 42. IDs without a numeric suffix return 0, so they sort
// after numbered IDs when ordered by suffix descending.
func Suffix(id string) int {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		// Run longer than an int; too large to order meaningfully.
		return 0
	}
	return n
}

// Less orders two IDs by numeric suffix descending, the tie-break used when
// transactions share a calendar date.
func Less(a, b string) bool {
	return Suffix(a) > Suffix(b)
}
