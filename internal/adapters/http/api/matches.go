package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/breadbutter/matchd/internal/adapters/repository"
	service "github.com/breadbutter/matchd/internal/app"
	"github.com/breadbutter/matchd/internal/domain/model"
)

// MatchesHandler handles match run, retrieval, and status requests.
type MatchesHandler struct {
	deps Dependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// findMatchesRequest mirrors the POST /api/matching/find-matches body.
// Limit is a pointer so an omitted limit falls through to the service
// default while an explicit out-of-range value is rejected.
type findMatchesRequest struct {
	GigID int64 `json:"gigId"`
	Limit *int  `json:"limit"`
}

func (r findMatchesRequest) validate() error {
	if r.GigID <= 0 {
		return errors.New("gigId must be a positive integer")
	}
	if r.Limit != nil && (*r.Limit < 1 || *r.Limit > service.MaxLimit) {
		return fmt.Errorf("limit must be between 1 and %d", service.MaxLimit)
	}
	return nil
}

func (r findMatchesRequest) limit() int {
	if r.Limit == nil {
		return 0
	}
	return *r.Limit
}

type matchPayload struct {
	Talent       talentPayload `json:"talent"`
	OverallScore float64       `json:"overallScore"`
	Scores       scoresPayload `json:"scores"`
	Explanation  string        `json:"explanation"`
	Rank         int           `json:"rank"`
}

type findMatchesResponse struct {
	Success      bool           `json:"success"`
	Gig          gigSummary     `json:"gig"`
	TotalMatches int            `json:"totalMatches"`
	Matches      []matchPayload `json:"matches"`
}

// HandleFindMatches handles POST /api/matching/find-matches requests.
func (h *MatchesHandler) HandleFindMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req findMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.deps.FindMatches(r.Context(), req.GigID, req.limit())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", errors.New("gig not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	matches := make([]matchPayload, 0, len(result.Matches))
	for _, c := range result.Matches {
		matches = append(matches, matchPayload{
			Talent:       toTalentPayload(c.Talent),
			OverallScore: c.Match.OverallScore,
			Scores:       toScoresPayload(c.Match.Scores),
			Explanation:  c.Match.Explanation,
			Rank:         c.Rank,
		})
	}

	writeJSON(w, http.StatusOK, findMatchesResponse{
		Success:      true,
		Gig:          toGigSummary(result.Gig),
		TotalMatches: len(matches),
		Matches:      matches,
	})
}

type savedMatchPayload struct {
	MatchID     string        `json:"matchId"`
	Talent      talentPayload `json:"talent"`
	Overall     int           `json:"overall"`
	Scores      scoresPayload `json:"scores"`
	Explanation string        `json:"explanation"`
	Status      string        `json:"status"`
	Rank        int           `json:"rank"`
}

type savedMatchesResponse struct {
	Success      bool                `json:"success"`
	GigID        int64               `json:"gigId"`
	TotalMatches int                 `json:"totalMatches"`
	Matches      []savedMatchPayload `json:"matches"`
}

// HandleGetMatches handles GET /api/matching/matches/{gigID} requests.
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/matching/matches/")
	gigID, err := strconv.ParseInt(path, 10, 64)
	if err != nil || gigID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid gig id"))
		return
	}

	result, err := h.deps.SavedMatches(r.Context(), gigID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", errors.New("gig not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	matches := make([]savedMatchPayload, 0, len(result.Matches))
	for _, c := range result.Matches {
		matches = append(matches, savedMatchPayload{
			MatchID:     c.Match.ID,
			Talent:      toTalentPayload(c.Talent),
			Overall:     int(math.Round(c.Match.OverallScore * 100)),
			Scores:      toScoresPayload(c.Match.Scores),
			Explanation: c.Match.Explanation,
			Status:      string(c.Match.Status),
			Rank:        c.Rank,
		})
	}

	writeJSON(w, http.StatusOK, savedMatchesResponse{
		Success:      true,
		GigID:        gigID,
		TotalMatches: len(matches),
		Matches:      matches,
	})
}

// statusRequest mirrors the POST /api/matching/match-status body.
type statusRequest struct {
	MatchID string `json:"matchId"`
	Status  string `json:"status"`
}

func (r statusRequest) validate() error {
	if strings.TrimSpace(r.MatchID) == "" {
		return errors.New("missing matchId")
	}
	if strings.TrimSpace(r.Status) == "" {
		return errors.New("missing status")
	}
	return nil
}

type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleSetStatus handles POST /api/matching/match-status requests.
func (h *MatchesHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	err := h.deps.SetMatchStatus(r.Context(), req.MatchID, model.MatchStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", errors.New("match not found"))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, ackResponse{Success: true, Message: "Match status updated"})
}
