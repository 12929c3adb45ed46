package scoring

import (
	"fmt"
	"math"
	"sort"
)

// RankedBook is one entry of a ranking.
type RankedBook struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Policy selects how the rated scorer maps a raw weighted sum to a score.
type Policy string

const (
	// PolicyNormalized scales the weighted sum onto 0–10 against the best
	// possible sum for the given weights.
	PolicyNormalized Policy = "normalized"
	// PolicyRaw reports the weighted sum itself.
	PolicyRaw Policy = "raw"
)

// ParsePolicy accepts "normalized" or "raw".
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyNormalized, PolicyRaw:
		return p, nil
	default:
		return "", fmt.Errorf("unknown normalization policy %q", s)
	}
}

// RatedScorer ranks books that carry explicit per-criterion ratings.
type RatedScorer struct {
	policy Policy
}

// NewRatedScorer creates a RatedScorer. An empty policy means PolicyNormalized.
func NewRatedScorer(policy Policy) *RatedScorer {
	if policy == "" {
		policy = PolicyNormalized
	}
	return &RatedScorer{policy: policy}
}

// Rank validates the input and returns the books sorted by descending score.
// No scoring happens if validation fails.
func (s *RatedScorer) Rank(books []RatedBook, weights Weights) ([]RankedBook, error) {
	if err := ValidateRated(books, weights); err != nil {
		return nil, err
	}
	if s.policy == PolicyRaw && math.IsInf(weights.MaxPossible(), 0) {
		name, w := weights.Largest()
		return nil, weightOverflow(name, w)
	}
	return s.Score(books, weights), nil
}

// Score computes the ranking for already validated input.
//
//	raw        = Σ rating[c] × weight[c]
//	normalized = raw / Σ(10 × weight[c]) × 10
//
// Both are rounded to 2 decimals. The normalized score is computed on
// weights scaled by the largest one, which leaves the ratio unchanged and
// keeps every sum finite; a book rated 10 everywhere scores exactly 10.
func (s *RatedScorer) Score(books []RatedBook, weights Weights) []RankedBook {
	criteria := weights.Criteria()
	if s.policy == PolicyNormalized {
		weights = weights.Scaled()
	}
	maxPossible := weights.MaxPossible()

	ranked := make([]RankedBook, 0, len(books))
	for _, b := range books {
		var raw float64
		for _, c := range criteria {
			raw += b.Ratings[c] * weights[c]
		}
		score := raw
		if s.policy == PolicyNormalized {
			score = raw / maxPossible * MaxRating
		}
		ranked = append(ranked, RankedBook{Name: b.Name, Score: round2(score)})
	}
	sortRanked(ranked)
	return ranked
}

// sortRanked orders by descending score, keeping input order among ties.
func sortRanked(ranked []RankedBook) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
}

// round2 rounds to 2 decimals. Magnitudes of 1e15 and above have no
// sub-cent precision left and are returned as is, so v*100 cannot overflow.
func round2(v float64) float64 {
	if math.Abs(v) >= 1e15 {
		return v
	}
	return math.Round(v*100) / 100
}
