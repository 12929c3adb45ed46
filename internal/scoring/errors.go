package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per validation failure kind. A *ValidationError wraps
// exactly one of them.
var (
	ErrMissingCriterion  = errors.New("missing criterion")
	ErrExtraCriterion    = errors.New("extra criterion")
	ErrRatingOutOfRange  = errors.New("out of range rating")
	ErrNonPositiveWeight = errors.New("bad weight")
	ErrWeightOverflow    = errors.New("weight overflow")
	ErrEmptyInput        = errors.New("no items")
)

// ValidationError describes the single constraint that rejected a request.
// Only the fields relevant to Kind are set.
type ValidationError struct {
	Kind      error
	Book      string
	Criterion string
	Value     float64
	Missing   []string
	Extra     []string
	Message   string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Code returns a stable snake_case identifier for the error kind.
func (e *ValidationError) Code() string {
	switch e.Kind {
	case ErrMissingCriterion:
		return "missing_criterion"
	case ErrExtraCriterion:
		return "extra_criterion"
	case ErrRatingOutOfRange:
		return "rating_out_of_range"
	case ErrNonPositiveWeight:
		return "non_positive_weight"
	case ErrWeightOverflow:
		return "weight_overflow"
	case ErrEmptyInput:
		return "empty_input"
	default:
		return "invalid"
	}
}

func emptyInput(msg string) *ValidationError {
	return &ValidationError{Kind: ErrEmptyInput, Message: msg}
}

func badWeight(criterion string, w float64, want string) *ValidationError {
	return &ValidationError{
		Kind:      ErrNonPositiveWeight,
		Criterion: criterion,
		Value:     w,
		Message:   fmt.Sprintf("weight for '%s' must be %s (got %g)", criterion, want, w),
	}
}

func weightOverflow(criterion string, w float64) *ValidationError {
	return &ValidationError{
		Kind:      ErrWeightOverflow,
		Criterion: criterion,
		Value:     w,
		Message:   fmt.Sprintf("weights are too large to score (largest is '%s' = %g)", criterion, w),
	}
}

func ratingOutOfRange(book, criterion string, v float64) *ValidationError {
	return &ValidationError{
		Kind:      ErrRatingOutOfRange,
		Book:      book,
		Criterion: criterion,
		Value:     v,
		Message:   fmt.Sprintf("rating for '%s' on book '%s' must be between 0 and 10 (got %g)", criterion, book, v),
	}
}

// criteriaMismatch reports missing and extra criteria together. The kind is
// MissingCriterion whenever anything is missing.
func criteriaMismatch(book string, missing, extra []string) *ValidationError {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "is missing ratings for: "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "has unknown criteria: "+strings.Join(extra, ", "))
	}
	kind := ErrMissingCriterion
	if len(missing) == 0 {
		kind = ErrExtraCriterion
	}
	return &ValidationError{
		Kind:    kind,
		Book:    book,
		Missing: missing,
		Extra:   extra,
		Message: fmt.Sprintf("book '%s' %s", book, strings.Join(parts, "; ")),
	}
}
