package scoring

import (
	"math"
	"sort"
)

// MaxRating is the upper bound of a per-criterion rating. Ratings live in
// [0, MaxRating].
const MaxRating = 10.0

// Weights maps a criterion name to its relative importance.
// Every value must be > 0 and at least one criterion must be present; the key
// set defines the active criteria for a request.
type Weights map[string]float64

// Criteria returns the criterion names in sorted order.
func (w Weights) Criteria() []string {
	names := make([]string, 0, len(w))
	for name := range w {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// MaxPossible is the raw score of a book rated MaxRating on every criterion,
// summed in criterion order. It is +Inf when the weights are too large to
// score without overflow.
func (w Weights) MaxPossible() float64 {
	var total float64
	for _, name := range w.Criteria() {
		total += MaxRating * w[name]
	}
	return total
}

// Largest returns the criterion with the greatest weight. Ties go to the
// first criterion in sorted order.
func (w Weights) Largest() (string, float64) {
	var (
		best  string
		bestW float64
	)
	for _, name := range w.Criteria() {
		if w[name] > bestW {
			best, bestW = name, w[name]
		}
	}
	return best, bestW
}

// Scaled divides every weight by the largest one, so all values land in
// [0, 1] and keep their ratios. Sums over scaled weights cannot overflow.
func (w Weights) Scaled() Weights {
	_, largest := w.Largest()
	scaled := make(Weights, len(w))
	for name, v := range w {
		scaled[name] = v / largest
	}
	return scaled
}

// Validate checks that at least one criterion is present and every weight is
// a finite positive number. Criteria are checked in sorted order.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return emptyInput("at least one criterion weight is required")
	}
	for _, name := range w.Criteria() {
		v := w[name]
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return badWeight(name, v, "positive")
		}
	}
	return nil
}
