package api

import (
	"fmt"
	"net/http"

	"github.com/breadbutter/matchd/internal/domain/model"
	"github.com/breadbutter/matchd/internal/domain/scoring"
)

// InfoHandler describes the matching algorithm.
type InfoHandler struct{}

// NewInfoHandler creates a new algorithm info handler.
func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

type criterionInfo struct {
	Weight      string `json:"weight"`
	Description string `json:"description"`
}

type algorithmInfo struct {
	Name            string                   `json:"name"`
	Version         string                   `json:"version"`
	Description     string                   `json:"description"`
	ScoringCriteria map[string]criterionInfo `json:"scoringCriteria"`
	Features        []string                 `json:"features"`
}

type infoResponse struct {
	Success   bool          `json:"success"`
	Algorithm algorithmInfo `json:"algorithm"`
}

var criterionDescriptions = map[string]string{
	model.CriterionSkills:       "Matches required skills with talent expertise, including partial and keyword matches",
	model.CriterionLocation:     "Geographic compatibility, with higher scores for exact matches and regional proximity",
	model.CriterionBudget:       "Budget range compatibility between client requirements and talent expectations",
	model.CriterionExperience:   "Years of experience, project count, and client ratings",
	model.CriterionAvailability: "Current availability status of the talent",
	model.CriterionSemantic:     "Semantic similarity between gig requirements and talent profiles",
}

// HandleInfo handles GET /api/matching/algorithm-info requests.
func (h *InfoHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	criteria := make(map[string]criterionInfo, len(scoring.Weights))
	for criterion, weight := range scoring.Weights {
		criteria[criterion] = criterionInfo{
			Weight:      fmt.Sprintf("%.0f%%", weight*100),
			Description: criterionDescriptions[criterion],
		}
	}

	writeJSON(w, http.StatusOK, infoResponse{
		Success: true,
		Algorithm: algorithmInfo{
			Name:            "Talent Matching Engine",
			Version:         "1.0.0",
			Description:     "Multi-factor scoring algorithm combining rule-based logic with embedding-based semantic matching",
			ScoringCriteria: criteria,
			Features: []string{
				"Skill matching with partial keyword support",
				"Location-aware scoring with regional intelligence",
				"Budget compatibility analysis",
				"Experience and reputation scoring",
				"Availability checking",
				"Embedding-based semantic similarity with deterministic fallback",
				"Detailed match explanations",
				"Feedback loop integration",
			},
		},
	})
}
