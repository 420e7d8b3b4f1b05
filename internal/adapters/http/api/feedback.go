package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/breadbutter/matchd/internal/adapters/repository"
	service "github.com/breadbutter/matchd/internal/app"
)

// FeedbackHandler handles match feedback submissions.
type FeedbackHandler struct {
	deps Dependencies
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(deps Dependencies) *FeedbackHandler {
	return &FeedbackHandler{deps: deps}
}

const maxFeedbackLength = 1000

// feedbackRequest mirrors the POST /api/matching/feedback body.
type feedbackRequest struct {
	MatchID  string `json:"matchId"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

func (r feedbackRequest) validate() error {
	switch {
	case strings.TrimSpace(r.MatchID) == "":
		return errors.New("missing matchId")
	case r.Rating < 1 || r.Rating > 5:
		return errors.New("rating must be between 1 and 5")
	case len(r.Feedback) > maxFeedbackLength:
		return errors.New("feedback exceeds 1000 characters")
	}
	return nil
}

// HandleFeedback handles POST /api/matching/feedback requests.
func (h *FeedbackHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	_, err := h.deps.SubmitFeedback(r.Context(), req.MatchID, req.Rating, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", errors.New("match not found"))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, ackResponse{Success: true, Message: "Feedback submitted successfully"})
}
