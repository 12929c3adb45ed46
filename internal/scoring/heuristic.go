package scoring

import (
	"math"
	"strings"
	"unicode/utf8"
)

// HeuristicWeights sets the relative importance of the three title-derived
// metrics. Components must be >= 0; an all-zero set means "no preference".
type HeuristicWeights struct {
	Readability float64 `json:"readability"`
	Depth       float64 `json:"depth"`
	Popularity  float64 `json:"popularity"`
}

// Sum returns the total of all weights.
func (w HeuristicWeights) Sum() float64 {
	return w.Readability + w.Depth + w.Popularity
}

// Validate rejects negative or non-finite components.
func (w HeuristicWeights) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"depth", w.Depth},
		{"popularity", w.Popularity},
		{"readability", w.Readability},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return badWeight(f.name, f.v, "non-negative")
		}
	}
	return nil
}

// Normalize scales the weights to sum to 1. A non-positive total falls back
// to equal weighting. Components are first divided by the largest one so the
// total stays finite for any finite input.
func (w HeuristicWeights) Normalize() HeuristicWeights {
	largest := math.Max(w.Readability, math.Max(w.Depth, w.Popularity))
	if w.Sum() <= 0 || largest <= 0 {
		return HeuristicWeights{Readability: 1.0 / 3, Depth: 1.0 / 3, Popularity: 1.0 / 3}
	}
	scaled := HeuristicWeights{
		Readability: w.Readability / largest,
		Depth:       w.Depth / largest,
		Popularity:  w.Popularity / largest,
	}
	total := scaled.Sum()
	return HeuristicWeights{
		Readability: scaled.Readability / total,
		Depth:       scaled.Depth / total,
		Popularity:  scaled.Popularity / total,
	}
}

// TitleMetrics are the per-title values the heuristic scorer combines.
// Each lies in [0.2, 1.0].
type TitleMetrics struct {
	Readability float64 `json:"readability"`
	Depth       float64 `json:"depth"`
	Popularity  float64 `json:"popularity"`
}

// MeasureTitle derives the heuristic metrics from a book name.
// Shorter titles read easier, more words suggest depth, and a higher vowel
// ratio stands in for catchiness.
func MeasureTitle(name string) TitleMetrics {
	length := utf8.RuneCountInString(name)
	words := len(strings.Fields(name))

	return TitleMetrics{
		Readability: clamp(1.5-float64(length)/40, 0.2, 1.0),
		Depth:       clamp(0.3+float64(words)/10, 0.2, 1.0),
		Popularity:  clamp(0.3+float64(countVowels(name))/float64(max(3, length)), 0.2, 1.0),
	}
}

func countVowels(s string) int {
	n := 0
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			n++
		}
	}
	return n
}

// HeuristicScorer ranks bare book names using title-derived metrics. The
// same title always gets the same score.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a HeuristicScorer.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Rank cleans the names, validates the weights and returns the names sorted
// by descending score. Scores are on a 0–100 scale and are not rounded.
func (s *HeuristicScorer) Rank(names []string, weights HeuristicWeights) ([]RankedBook, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	cleaned, err := CleanNames(names)
	if err != nil {
		return nil, err
	}
	return s.Score(cleaned, weights), nil
}

// Score computes the ranking for already cleaned names.
func (s *HeuristicScorer) Score(names []string, weights HeuristicWeights) []RankedBook {
	nw := weights.Normalize()

	ranked := make([]RankedBook, 0, len(names))
	for _, name := range names {
		m := MeasureTitle(name)
		score := (m.Readability*nw.Readability + m.Depth*nw.Depth + m.Popularity*nw.Popularity) * 100
		ranked = append(ranked, RankedBook{Name: name, Score: score})
	}
	sortRanked(ranked)
	return ranked
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
