// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	service "github.com/breadbutter/matchd/internal/app"
	"github.com/breadbutter/matchd/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the matching service.
type Dependencies interface {
	// FindMatches runs the matching pipeline for a gig and returns the
	// ranked, persisted result.
	FindMatches(ctx context.Context, gigID int64, limit int) (*service.Result, error)

	// SavedMatches returns the stored match set for a gig.
	SavedMatches(ctx context.Context, gigID int64) (*service.Result, error)

	// SetMatchStatus moves a match through its workflow.
	SetMatchStatus(ctx context.Context, matchID string, status model.MatchStatus) error

	// SubmitFeedback records a client rating for a match.
	SubmitFeedback(ctx context.Context, matchID string, rating int, text string) (model.Feedback, error)
}

// Server wires HTTP routes for the matching API.
type Server struct {
	matchesHandler  *MatchesHandler
	feedbackHandler *FeedbackHandler
	infoHandler     *InfoHandler
	healthHandler   *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		matchesHandler:  NewMatchesHandler(deps),
		feedbackHandler: NewFeedbackHandler(deps),
		infoHandler:     NewInfoHandler(),
		healthHandler:   NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/matching/find-matches", MetricsMiddleware(s.matchesHandler.HandleFindMatches, "find_matches"))
	mux.HandleFunc("/api/matching/matches/", MetricsMiddleware(s.matchesHandler.HandleGetMatches, "get_matches"))
	mux.HandleFunc("/api/matching/match-status", MetricsMiddleware(s.matchesHandler.HandleSetStatus, "match_status"))
	mux.HandleFunc("/api/matching/feedback", MetricsMiddleware(s.feedbackHandler.HandleFeedback, "feedback"))
	mux.HandleFunc("/api/matching/algorithm-info", MetricsMiddleware(s.infoHandler.HandleInfo, "algorithm_info"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
}

// talentPayload is the talent shape embedded in match responses.
type talentPayload struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	City            string   `json:"city"`
	Categories      []string `json:"categories"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experienceYears"`
	Rating          float64  `json:"rating"`
	PortfolioLinks  []string `json:"portfolioLinks"`
	InstagramHandle string   `json:"instagramHandle"`
	Bio             string   `json:"bio"`
}

func toTalentPayload(t model.Talent) talentPayload {
	return talentPayload{
		ID:              t.ID,
		Name:            t.Name,
		City:            t.City,
		Categories:      t.Categories,
		Skills:          t.Skills,
		ExperienceYears: t.ExperienceYears,
		Rating:          t.Rating,
		PortfolioLinks:  t.PortfolioLinks,
		InstagramHandle: t.InstagramHandle,
		Bio:             t.Bio,
	}
}

// scoresPayload renders criterion scores as integer percentages.
type scoresPayload struct {
	Skills       int `json:"skills"`
	Location     int `json:"location"`
	Budget       int `json:"budget"`
	Experience   int `json:"experience"`
	Availability int `json:"availability"`
	Semantic     int `json:"semantic"`
}

func toScoresPayload(s model.ScoreSet) scoresPayload {
	return scoresPayload{
		Skills:       s.Percent(model.CriterionSkills),
		Location:     s.Percent(model.CriterionLocation),
		Budget:       s.Percent(model.CriterionBudget),
		Experience:   s.Percent(model.CriterionExperience),
		Availability: s.Percent(model.CriterionAvailability),
		Semantic:     s.Percent(model.CriterionSemantic),
	}
}

// gigSummary is the gig shape returned alongside fresh match runs.
type gigSummary struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Location       string   `json:"location"`
	Budget         string   `json:"budget"`
	RequiredSkills []string `json:"requiredSkills"`
}

func toGigSummary(g model.Gig) gigSummary {
	budget := "Open budget"
	if g.MinBudget != nil && g.MaxBudget != nil {
		budget = fmt.Sprintf("₹%.0f - ₹%.0f", *g.MinBudget, *g.MaxBudget)
	}
	return gigSummary{
		ID:             g.ID,
		Title:          g.Title,
		Category:       g.Category,
		Location:       g.Location,
		Budget:         budget,
		RequiredSkills: g.RequiredSkills,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
