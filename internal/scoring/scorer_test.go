package scoring

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestRatedScorerNormalizedBounds(t *testing.T) {
	weights := Weights{"readability": 0.7, "depth": 2.3, "price": 0.1}
	books := []RatedBook{
		{Name: "Top", Ratings: map[string]float64{"readability": 10, "depth": 10, "price": 10}},
		{Name: "Bottom", Ratings: map[string]float64{"readability": 0, "depth": 0, "price": 0}},
	}

	ranked, err := NewRatedScorer(PolicyNormalized).Rank(books, weights)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if ranked[0].Name != "Top" || ranked[0].Score != 10.0 {
		t.Errorf("expected Top=10.0 first, got %+v", ranked[0])
	}
	if ranked[1].Name != "Bottom" || ranked[1].Score != 0.0 {
		t.Errorf("expected Bottom=0.0 second, got %+v", ranked[1])
	}
}

func TestRatedScorerSingleCriterion(t *testing.T) {
	books := []RatedBook{
		{Name: "A", Ratings: map[string]float64{"x": 10}},
		{Name: "B", Ratings: map[string]float64{"x": 0}},
	}
	ranked, err := NewRatedScorer("").Rank(books, Weights{"x": 1})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	want := []RankedBook{{Name: "A", Score: 10.0}, {Name: "B", Score: 0.0}}
	if !reflect.DeepEqual(ranked, want) {
		t.Errorf("got %+v, want %+v", ranked, want)
	}
}

func TestRatedScorerPolicies(t *testing.T) {
	weights := Weights{"plot": 3, "style": 1}
	books := []RatedBook{
		{Name: "Dune", Ratings: map[string]float64{"plot": 9, "style": 6}},
	}

	tests := []struct {
		policy Policy
		want   float64
	}{
		// 9*3 + 6*1 = 33
		{PolicyRaw, 33},
		// 33 / 40 * 10 = 8.25
		{PolicyNormalized, 8.25},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			ranked := NewRatedScorer(tt.policy).Score(books, weights)
			if ranked[0].Score != tt.want {
				t.Errorf("got %f, want %f", ranked[0].Score, tt.want)
			}
		})
	}
}

func TestRatedScorerRoundsToTwoDecimals(t *testing.T) {
	weights := Weights{"a": 1, "b": 1, "c": 1}
	books := []RatedBook{{Name: "X", Ratings: map[string]float64{"a": 7, "b": 3, "c": 1}}}
	ranked := NewRatedScorer(PolicyNormalized).Score(books, weights)
	// 11 / 30 * 10 = 3.6666...
	if ranked[0].Score != 3.67 {
		t.Errorf("expected 3.67, got %v", ranked[0].Score)
	}
}

func TestRatedScorerOrderingAndStability(t *testing.T) {
	weights := Weights{"x": 2, "y": 1}
	books := []RatedBook{
		{Name: "tie-1", Ratings: map[string]float64{"x": 5, "y": 5}},
		{Name: "low", Ratings: map[string]float64{"x": 1, "y": 2}},
		{Name: "tie-2", Ratings: map[string]float64{"x": 5, "y": 5}},
		{Name: "high", Ratings: map[string]float64{"x": 9, "y": 8}},
		{Name: "tie-3", Ratings: map[string]float64{"x": 5, "y": 5}},
	}

	ranked, err := NewRatedScorer(PolicyNormalized).Rank(books, weights)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Errorf("not descending at %d: %v < %v", i, ranked[i-1].Score, ranked[i].Score)
		}
	}

	var names []string
	for _, r := range ranked {
		names = append(names, r.Name)
	}
	want := []string{"high", "tie-1", "tie-2", "tie-3", "low"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got order %v, want %v", names, want)
	}
}

func TestRatedScorerIdempotent(t *testing.T) {
	weights := Weights{"x": 1.5, "y": 0.5}
	books := []RatedBook{
		{Name: "A", Ratings: map[string]float64{"x": 4, "y": 9}},
		{Name: "B", Ratings: map[string]float64{"x": 8, "y": 2}},
	}
	s := NewRatedScorer(PolicyNormalized)

	first, err := s.Rank(books, weights)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	second, err := s.Rank(books, weights)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
	if books[0].Name != "A" || books[1].Name != "B" {
		t.Error("input slice was reordered")
	}
}

func TestRatedScorerRejectsBeforeScoring(t *testing.T) {
	books := []RatedBook{
		{Name: "Good", Ratings: map[string]float64{"x": 5}},
		{Name: "Bad", Ratings: map[string]float64{"x": 11}},
	}
	ranked, err := NewRatedScorer(PolicyNormalized).Rank(books, Weights{"x": 1})
	if !errors.Is(err, ErrRatingOutOfRange) {
		t.Fatalf("expected ErrRatingOutOfRange, got %v", err)
	}
	if ranked != nil {
		t.Errorf("expected no partial result, got %+v", ranked)
	}
}

func TestParsePolicy(t *testing.T) {
	for _, s := range []string{"normalized", "raw"} {
		if _, err := ParsePolicy(s); err != nil {
			t.Errorf("ParsePolicy(%q): %v", s, err)
		}
	}
	if _, err := ParsePolicy("log"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestWeightsMaxPossible(t *testing.T) {
	w := Weights{"a": 0.5, "b": 2}
	if math.Abs(w.MaxPossible()-25) > 1e-9 {
		t.Errorf("expected 25, got %f", w.MaxPossible())
	}
	if got := w.Criteria(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected sorted criteria, got %v", got)
	}
}

func TestRatedScorerLargeWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
	}{
		{"single", Weights{"x": 1e308}},
		{"sum overflows", Weights{"x": 1e308, "y": 1e308}},
		{"mixed magnitudes", Weights{"x": math.MaxFloat64, "y": 1e-300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full := make(map[string]float64)
			empty := make(map[string]float64)
			for c := range tt.weights {
				full[c] = 10
				empty[c] = 0
			}
			books := []RatedBook{{Name: "Low", Ratings: empty}, {Name: "High", Ratings: full}}

			ranked, err := NewRatedScorer(PolicyNormalized).Rank(books, tt.weights)
			if err != nil {
				t.Fatalf("Rank failed: %v", err)
			}
			if ranked[0].Name != "High" || ranked[0].Score != 10.0 {
				t.Errorf("expected High=10.0 first, got %+v", ranked[0])
			}
			if ranked[1].Score != 0.0 {
				t.Errorf("expected Low=0.0, got %+v", ranked[1])
			}
		})
	}
}

func TestRatedScorerLargeWeightsKeepRatio(t *testing.T) {
	weights := Weights{"plot": 3e307, "style": 1e307}
	books := []RatedBook{{Name: "Dune", Ratings: map[string]float64{"plot": 9, "style": 6}}}

	ranked, err := NewRatedScorer(PolicyNormalized).Rank(books, weights)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	// Same ratio as plot=3, style=1: 33 / 40 * 10
	if ranked[0].Score != 8.25 {
		t.Errorf("expected 8.25, got %v", ranked[0].Score)
	}
}

func TestRatedScorerRawOverflowRejected(t *testing.T) {
	books := []RatedBook{{Name: "A", Ratings: map[string]float64{"x": 10, "y": 10}}}

	ranked, err := NewRatedScorer(PolicyRaw).Rank(books, Weights{"x": 1e308, "y": 1e308})
	if !errors.Is(err, ErrWeightOverflow) {
		t.Fatalf("expected ErrWeightOverflow, got %v", err)
	}
	if ranked != nil {
		t.Errorf("expected no result, got %+v", ranked)
	}

	// Large but finite raw sums are reported as is.
	ranked, err = NewRatedScorer(PolicyRaw).Rank(books[:1], Weights{"x": 1e306, "y": 1e306})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if math.IsInf(ranked[0].Score, 0) || math.IsNaN(ranked[0].Score) {
		t.Errorf("expected finite raw score, got %v", ranked[0].Score)
	}
}

func TestWeightsScaled(t *testing.T) {
	w := Weights{"a": 4, "b": 1, "c": 2}
	name, largest := w.Largest()
	if name != "a" || largest != 4 {
		t.Errorf("expected a=4, got %s=%v", name, largest)
	}
	want := Weights{"a": 1, "b": 0.25, "c": 0.5}
	if got := w.Scaled(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
