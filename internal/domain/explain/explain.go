// Package explain renders human-readable match explanations from a talent's
// criterion scores. Only the criteria a client can act on are narrated;
// availability and semantic similarity stay silent.
package explain

import (
	"fmt"
	"strings"

	"github.com/breadbutter/matchd/internal/domain/model"
)

const separator = " • "

// Build returns the explanation string for a scored talent. Scores below
// every narration threshold produce an empty string.
func Build(t model.Talent, scores model.ScoreSet) string {
	var parts []string

	if s, ok := scores[model.CriterionSkills]; ok {
		pct := scores.Percent(model.CriterionSkills)
		switch {
		case s > 0.8:
			parts = append(parts, fmt.Sprintf("🎯 Excellent skill match (%d%%) - has most required skills", pct))
		case s > 0.6:
			parts = append(parts, fmt.Sprintf("✅ Good skill match (%d%%) - covers key requirements", pct))
		case s > 0.3:
			parts = append(parts, fmt.Sprintf("🔶 Partial skill match (%d%%) - some relevant skills", pct))
		}
	}

	if s, ok := scores[model.CriterionLocation]; ok {
		switch {
		case s == 1.0:
			parts = append(parts, fmt.Sprintf("📍 Perfect location match - based in %s", t.City))
		case s > 0.6:
			parts = append(parts, "📍 Good location compatibility - same region")
		case s > 0.3:
			parts = append(parts, "📍 Moderate location match - travel may be needed")
		}
	}

	if s, ok := scores[model.CriterionBudget]; ok {
		switch {
		case s > 0.8:
			if t.MinBudget != nil && t.MaxBudget != nil {
				parts = append(parts, fmt.Sprintf("💰 Budget aligns well with requirements (₹%.0f-₹%.0f)", *t.MinBudget, *t.MaxBudget))
			} else {
				parts = append(parts, "💰 Budget aligns well with requirements")
			}
		case s > 0.5:
			parts = append(parts, "💰 Budget partially compatible")
		}
	}

	if s, ok := scores[model.CriterionExperience]; ok {
		switch {
		case s > 0.8:
			parts = append(parts, fmt.Sprintf("⭐ Strong experience (%d years, %d projects)", t.ExperienceYears, t.TotalProjects))
		case s > 0.5:
			parts = append(parts, fmt.Sprintf("⭐ Moderate experience (%d years)", t.ExperienceYears))
		}
	}

	return strings.Join(parts, separator)
}
