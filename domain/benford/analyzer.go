package benford

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
)

// FirstDigit returns the leading digit (1-9) of a value's decimal
// representation, or 0 when the value has no defined leading digit.
// Zero inputs are expected to be filtered upstream; the guard here keeps
// the analyzer total honest if one slips through.
//
// The value is rendered with 12 significant digits before scanning so that
// floating-point artifacts (0.1+0.2 style residue) cannot shift the digit,
// and so magnitudes far from 1 resolve through the mantissa rather than the
// exponent.
func FirstDigit(value float64) int {
	if value == 0 {
		return 0
	}
	text := strconv.FormatFloat(math.Abs(value), 'g', 12, 64)
	for _, ch := range text {
		if ch >= '1' && ch <= '9' {
			return int(ch - '0')
		}
		if ch == 'e' {
			// Mantissa exhausted without a significant digit; only possible
			// for a zero mantissa, which the guard above already excluded.
			break
		}
	}
	return 0
}

// Expected returns the fixed Benford prior: digit d occurs with
// probability log10(1 + 1/d). Independent of any input.
func Expected() map[int]float64 {
	expected := make(map[int]float64, len(Digits))
	for _, digit := range Digits {
		expected[digit] = math.Log10(1 + 1/float64(digit))
	}
	return expected
}

// Analyze classifies the leading digit of every value and computes the
// observed distribution plus the two conformity statistics. It is a pure
// function: deterministic, no side effects, order-independent.
//
// An empty input is not an error; it yields Total 0, an all-zero observed
// distribution, ChiSquare 0 and MAD equal to the mean expected fraction.
func Analyze(values []float64) Result {
	counts := make(map[int]int, len(Digits))
	for _, digit := range Digits {
		counts[digit] = 0
	}

	total := 0
	for _, value := range values {
		digit := FirstDigit(value)
		if digit == 0 {
			continue
		}
		counts[digit]++
		total++
	}

	expectedPct := Expected()
	observedPct := make(map[int]float64, len(Digits))
	for _, digit := range Digits {
		if total > 0 {
			observedPct[digit] = float64(counts[digit]) / float64(total)
		} else {
			observedPct[digit] = 0.0
		}
	}

	deviations := make([]float64, 0, len(Digits))
	for _, digit := range Digits {
		deviations = append(deviations, math.Abs(observedPct[digit]-expectedPct[digit]))
	}
	// stats.Mean only errors on empty input; deviations always has nine entries
	mad, _ := stats.Mean(stats.Float64Data(deviations))

	chiSquare := 0.0
	for _, digit := range Digits {
		expectedCount := float64(total) * expectedPct[digit]
		if expectedCount > 0 {
			diff := float64(counts[digit]) - expectedCount
			chiSquare += diff * diff / expectedCount
		}
	}

	return Result{
		Counts:      counts,
		Total:       total,
		ObservedPct: observedPct,
		ExpectedPct: expectedPct,
		MAD:         mad,
		ChiSquare:   chiSquare,
	}
}
