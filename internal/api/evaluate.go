package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Bookrank/internal/config"
	"github.com/MikeSquared-Agency/Bookrank/internal/hermes"
	"github.com/MikeSquared-Agency/Bookrank/internal/metrics"
	"github.com/MikeSquared-Agency/Bookrank/internal/scoring"
)

// RatedRequest is the body of POST /evaluate for the rated variant.
type RatedRequest struct {
	Books   []scoring.RatedBook `json:"books"`
	Weights scoring.Weights     `json:"weights"`
}

// HeuristicRequest is the body of POST /evaluate for the heuristic variant.
type HeuristicRequest struct {
	Books   []string                 `json:"books"`
	Weights scoring.HeuristicWeights `json:"weights"`
}

type EvaluationResponse struct {
	RankedBooks []scoring.RankedBook `json:"ranked_books"`
}

// ValidationErrorResponse is returned with 422 when the validator rejects a
// request.
type ValidationErrorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code"`
	Book      string   `json:"book,omitempty"`
	Criterion string   `json:"criterion,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	Missing   []string `json:"missing,omitempty"`
	Extra     []string `json:"extra,omitempty"`
}

type EvaluateHandler struct {
	variant      string
	rated        *scoring.RatedScorer
	heuristic    *scoring.HeuristicScorer
	events       hermes.Publisher
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewEvaluateHandler(variant string, policy scoring.Policy, events hermes.Publisher, maxBodyBytes int64, logger *slog.Logger) *EvaluateHandler {
	if events == nil {
		events = hermes.Nop{}
	}
	return &EvaluateHandler{
		variant:      variant,
		rated:        scoring.NewRatedScorer(policy),
		heuristic:    scoring.NewHeuristicScorer(),
		events:       events,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Evaluate ranks the books in the request body.
// POST /evaluate
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	w.Header().Set("X-Evaluation-ID", id)

	var (
		ranked []scoring.RankedBook
		err    error
	)
	switch h.variant {
	case config.VariantHeuristic:
		var req HeuristicRequest
		if err = decodeJSON(w, r, h.maxBodyBytes, &req); err == nil {
			ranked, err = h.heuristic.Rank(req.Books, req.Weights)
		}
	default:
		var req RatedRequest
		if err = decodeJSON(w, r, h.maxBodyBytes, &req); err == nil {
			ranked, err = h.rated.Rank(req.Books, req.Weights)
		}
	}

	if err != nil {
		h.reject(w, id, err)
		return
	}

	metrics.RecordEvaluation(h.variant, "ranked", len(ranked))
	h.logger.Debug("evaluation ranked", "evaluation_id", id, "variant", h.variant, "books", len(ranked))
	h.publish(hermes.SubjectEvaluationCompleted(id), completedEvent(id, h.variant, ranked))

	writeJSON(w, http.StatusOK, EvaluationResponse{RankedBooks: ranked})
}

func (h *EvaluateHandler) reject(w http.ResponseWriter, id string, err error) {
	var ve *scoring.ValidationError
	if !errors.As(err, &ve) {
		metrics.RecordEvaluation(h.variant, "malformed", 0)
		if errors.Is(err, errBodyTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.RecordEvaluation(h.variant, "rejected", 0)
	h.logger.Info("evaluation rejected", "evaluation_id", id, "variant", h.variant, "code", ve.Code(), "error", ve.Error())
	h.publish(hermes.SubjectEvaluationRejected(id), hermes.EvaluationRejectedEvent{
		EvaluationID: id,
		Variant:      h.variant,
		Code:         ve.Code(),
		Error:        ve.Error(),
		Timestamp:    time.Now().UTC(),
	})

	writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse(ve))
}

func (h *EvaluateHandler) publish(subject string, event interface{}) {
	if err := h.events.Publish(subject, event); err != nil {
		h.logger.Warn("failed to publish evaluation event", "subject", subject, "error", err)
	}
}

func validationErrorResponse(ve *scoring.ValidationError) ValidationErrorResponse {
	resp := ValidationErrorResponse{
		Error:     ve.Error(),
		Code:      ve.Code(),
		Book:      ve.Book,
		Criterion: ve.Criterion,
		Missing:   ve.Missing,
		Extra:     ve.Extra,
	}
	if errors.Is(ve, scoring.ErrRatingOutOfRange) || errors.Is(ve, scoring.ErrNonPositiveWeight) ||
		errors.Is(ve, scoring.ErrWeightOverflow) {
		v := ve.Value
		resp.Value = &v
	}
	return resp
}

func completedEvent(id, variant string, ranked []scoring.RankedBook) hermes.EvaluationCompletedEvent {
	ev := hermes.EvaluationCompletedEvent{
		EvaluationID: id,
		Variant:      variant,
		BookCount:    len(ranked),
		Timestamp:    time.Now().UTC(),
	}
	if len(ranked) > 0 {
		ev.TopBook = ranked[0].Name
		ev.TopScore = ranked[0].Score
	}
	return ev
}

// Health reports that the API is up.
// GET /
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Book Decision Companion API is running.",
	})
}
