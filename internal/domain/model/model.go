// Package model contains domain models passed between layers.
package model

import (
	"math"
	"time"
)

// Criterion names used as ScoreSet keys.
const (
	CriterionSkills       = "skills"
	CriterionLocation     = "location"
	CriterionBudget       = "budget"
	CriterionExperience   = "experience"
	CriterionAvailability = "availability"
	CriterionSemantic     = "semantic"
)

// Criteria lists the six scoring criteria in canonical order.
var Criteria = []string{
	CriterionSkills,
	CriterionLocation,
	CriterionBudget,
	CriterionExperience,
	CriterionAvailability,
	CriterionSemantic,
}

// Availability is a talent's current availability status.
type Availability string

// Availability values.
const (
	Available          Availability = "available"
	PartiallyAvailable Availability = "partially_available"
	Busy               Availability = "busy"
	Unavailable        Availability = "unavailable"
)

// Urgency is a gig's urgency level.
type Urgency string

// Urgency values.
const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// GigStatus is a gig's lifecycle status.
type GigStatus string

// GigStatus values.
const (
	GigOpen   GigStatus = "open"
	GigClosed GigStatus = "closed"
)

// MatchStatus is a persisted match's workflow status.
type MatchStatus string

// MatchStatus values.
const (
	MatchSuggested MatchStatus = "suggested"
	MatchContacted MatchStatus = "contacted"
	MatchAccepted  MatchStatus = "accepted"
	MatchRejected  MatchStatus = "rejected"
)

// ValidMatchStatus reports whether s is one of the known match statuses.
func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchSuggested, MatchContacted, MatchAccepted, MatchRejected:
		return true
	}
	return false
}

// Gig represents a posted creative project seeking talent.
// A nil budget bound means the range is unbounded on that side.
type Gig struct {
	ID                     int64      `db:"id" json:"id"`
	ClientID               int64      `db:"client_id" json:"client_id"`
	Title                  string     `db:"title" json:"title"`
	Description            string     `db:"description" json:"description"`
	Category               string     `db:"category" json:"category"`
	RequiredSkills         []string   `db:"required_skills" json:"required_skills"`
	Location               string     `db:"location" json:"location"`
	IsRemote               bool       `db:"is_remote" json:"is_remote"`
	StartDate              *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate                *time.Time `db:"end_date" json:"end_date,omitempty"`
	DurationDays           *int       `db:"duration_days" json:"duration_days,omitempty"`
	MinBudget              *float64   `db:"min_budget" json:"min_budget,omitempty"`
	MaxBudget              *float64   `db:"max_budget" json:"max_budget,omitempty"`
	StylePreferences       []string   `db:"style_preferences" json:"style_preferences"`
	AdditionalRequirements string     `db:"additional_requirements" json:"additional_requirements"`
	Status                 GigStatus  `db:"status" json:"status"`
	Urgency                Urgency    `db:"urgency_level" json:"urgency_level"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
}

// Talent represents a freelance professional profile eligible for matching.
type Talent struct {
	ID              int64        `db:"id" json:"id"`
	Name            string       `db:"name" json:"name"`
	Email           string       `db:"email" json:"email"`
	City            string       `db:"city" json:"city"`
	Categories      []string     `db:"categories" json:"categories"`
	Skills          []string     `db:"skills" json:"skills"`
	ExperienceYears int          `db:"experience_years" json:"experience_years"`
	MinBudget       *float64     `db:"min_budget" json:"min_budget,omitempty"`
	MaxBudget       *float64     `db:"max_budget" json:"max_budget,omitempty"`
	PortfolioLinks  []string     `db:"portfolio_links" json:"portfolio_links"`
	Bio             string       `db:"bio" json:"bio"`
	InstagramHandle string       `db:"instagram_handle" json:"instagram_handle"`
	Availability    Availability `db:"availability_status" json:"availability_status"`
	Rating          float64      `db:"rating" json:"rating"`
	TotalProjects   int          `db:"total_projects" json:"total_projects"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
}

// ScoreSet maps criterion name to a score in [0, 1].
// All six criteria are always present.
type ScoreSet map[string]float64

// Percent converts a criterion score to an integer percentage for API output.
func (s ScoreSet) Percent(criterion string) int {
	return int(math.Round(s[criterion] * 100))
}

// Clone returns an independent copy of the score set.
func (s ScoreSet) Clone() ScoreSet {
	out := make(ScoreSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Match is a persisted, ranked gig/talent pairing with scores and explanation.
// The full set of matches for a gig is replaced on every match run.
type Match struct {
	ID           string      `db:"id" json:"id"`
	GigID        int64       `db:"gig_id" json:"gig_id"`
	TalentID     int64       `db:"talent_id" json:"talent_id"`
	OverallScore float64     `db:"overall_score" json:"overall_score"`
	Scores       ScoreSet    `db:"-" json:"scores"`
	Explanation  string      `db:"explanation" json:"explanation"`
	Status       MatchStatus `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// Feedback is a client's rating of a persisted match, one per match.
type Feedback struct {
	ID        string    `db:"id" json:"id"`
	MatchID   string    `db:"match_id" json:"match_id"`
	Rating    int       `db:"rating" json:"rating"`
	Text      string    `db:"feedback_text" json:"feedback_text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
