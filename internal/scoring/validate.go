package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// RatedBook is one candidate with a rating per criterion.
type RatedBook struct {
	Name    string             `json:"name"`
	Ratings map[string]float64 `json:"ratings"`
}

// ValidateRated checks weights and books before any scoring happens. It
// returns the first violation found as a *ValidationError:
// weights first, then the book list, then each book in input order.
// Every book needs a non-blank name.
func ValidateRated(books []RatedBook, weights Weights) error {
	if err := weights.Validate(); err != nil {
		return err
	}
	if len(books) == 0 {
		return emptyInput("at least one book is required")
	}

	criteria := weights.Criteria()
	for i, b := range books {
		if strings.TrimSpace(b.Name) == "" {
			return emptyInput(fmt.Sprintf("book %d has no name", i+1))
		}
		if err := validateRatings(b); err != nil {
			return err
		}

		var missing []string
		for _, c := range criteria {
			if _, ok := b.Ratings[c]; !ok {
				missing = append(missing, c)
			}
		}
		var extra []string
		for c := range b.Ratings {
			if _, ok := weights[c]; !ok {
				extra = append(extra, c)
			}
		}
		if len(missing) > 0 || len(extra) > 0 {
			sort.Strings(extra)
			return criteriaMismatch(b.Name, missing, extra)
		}
	}
	return nil
}

func validateRatings(b RatedBook) error {
	names := make([]string, 0, len(b.Ratings))
	for c := range b.Ratings {
		names = append(names, c)
	}
	sort.Strings(names)

	for _, c := range names {
		v := b.Ratings[c]
		if math.IsNaN(v) || v < 0 || v > MaxRating {
			return ratingOutOfRange(b.Name, c, v)
		}
	}
	return nil
}

// CleanNames trims surrounding whitespace from every name and drops the ones
// left empty. Input order is preserved. Returns an EmptyInput error when
// nothing remains.
func CleanNames(names []string) ([]string, error) {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return nil, emptyInput("at least one non-empty book name is required")
	}
	return cleaned, nil
}
