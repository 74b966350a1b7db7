package benford

// Digits spans the nine possible leading digits
var Digits = []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

// Result holds the terminal output of a first-digit conformity analysis.
// Once produced it is treated as immutable; renderers and the run ledger
// consume it independently.
type Result struct {
	// Counts maps leading digit (1-9) to occurrence count
	Counts map[int]int
	// Total is the count of values that contributed a defined leading digit
	Total int
	// ObservedPct and ExpectedPct map digit to a fraction in [0,1]
	ObservedPct map[int]float64
	ExpectedPct map[int]float64
	// MAD is the mean absolute deviation between observed and expected fractions
	MAD float64
	// ChiSquare is the goodness-of-fit statistic against expected counts
	ChiSquare float64
}

// Deviation returns the signed observed-minus-expected fraction for a digit
func (r Result) Deviation(digit int) float64 {
	return r.ObservedPct[digit] - r.ExpectedPct[digit]
}
