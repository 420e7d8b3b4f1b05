// Package scoring implements the six criterion scorers and the weighted
// aggregation that turns a gig/talent pair into an overall compatibility
// score. Every scorer is a pure function over its inputs: no I/O, no shared
// state, safe to evaluate in any order or concurrently.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/breadbutter/matchd/internal/domain/model"
)

// Weights combines criterion scores into the overall score. They sum to 1.0.
var Weights = map[string]float64{
	model.CriterionSkills:       0.25,
	model.CriterionLocation:     0.15,
	model.CriterionBudget:       0.20,
	model.CriterionExperience:   0.15,
	model.CriterionAvailability: 0.10,
	model.CriterionSemantic:     0.15,
}

// Per-skill credit tiers. Highest matching tier wins; tiers never stack.
const (
	directSkillCredit   = 1.0
	categorySkillCredit = 0.7
	keywordSkillCredit  = 0.3
)

// Skills scores how well the talent covers the gig's required skills.
// With no required skills there is nothing to judge, so the score is neutral.
func Skills(gig model.Gig, t model.Talent) float64 {
	if len(gig.RequiredSkills) == 0 {
		return 0.5
	}

	talentSkillsStr := strings.ToLower(strings.Join(t.Skills, " "))

	var credit float64
	for _, required := range gig.RequiredSkills {
		req := strings.ToLower(required)

		// Direct skill match
		if matchesAny(t.Skills, req) {
			credit += directSkillCredit
			continue
		}

		// Category match (partial credit)
		if matchesAny(t.Categories, req) {
			credit += categorySkillCredit
			continue
		}

		// Partial keyword match
		if keywordMatch(req, talentSkillsStr) {
			credit += keywordSkillCredit
		}
	}

	return math.Min(credit/float64(len(gig.RequiredSkills)), 1.0)
}

// matchesAny reports a case-insensitive substring match in either direction
// between the required skill and any of the talent's labels.
func matchesAny(labels []string, required string) bool {
	for _, label := range labels {
		l := strings.ToLower(label)
		if strings.Contains(l, required) || strings.Contains(required, l) {
			return true
		}
	}
	return false
}

// keywordMatch reports whether any whitespace-separated token of the required
// skill appears inside the concatenated talent skills string.
func keywordMatch(required, talentSkills string) bool {
	for _, keyword := range strings.Fields(required) {
		if strings.Contains(talentSkills, keyword) {
			return true
		}
	}
	return false
}

// Location scores geographic compatibility. Remote gigs ignore location
// entirely; otherwise city, region, and metro-connectivity tiers apply.
func Location(gig model.Gig, t model.Talent) float64 {
	if gig.IsRemote {
		return 1.0
	}

	gigLocation := strings.ToLower(gig.Location)
	talentCity := strings.ToLower(t.City)

	if gigLocation == "" || talentCity == "" {
		return 0.5
	}

	// Exact city match
	if strings.Contains(gigLocation, talentCity) || strings.Contains(talentCity, gigLocation) {
		return 1.0
	}

	if regionOf(gigLocation) == regionOf(talentCity) {
		return 0.7
	}

	// Major metro cities have better connectivity
	if isMajorMetro(gigLocation) && isMajorMetro(talentCity) {
		return 0.4
	}

	return 0.2
}

// Budget scores compatibility of the gig and talent budget ranges. A missing
// bound means the range is unbounded on that side; unbounded divisors are
// special-cased so the score saturates instead of producing NaN.
func Budget(gig model.Gig, t model.Talent) float64 {
	gigMin, gigMax := budgetBounds(gig.MinBudget, gig.MaxBudget)
	talentMin, talentMax := budgetBounds(t.MinBudget, t.MaxBudget)

	// Perfect match - budgets overlap
	if gigMax >= talentMin && gigMin <= talentMax {
		overlap := math.Min(gigMax, talentMax) - math.Max(gigMin, talentMin)
		gigRange := gigMax - gigMin
		talentRange := talentMax - talentMin

		if gigRange == 0 && talentRange == 0 {
			return 1.0
		}
		// Both ranges unbounded above: the overlap is unbounded too.
		if math.IsInf(overlap, 1) {
			return 1.0
		}

		// A finite overlap against an unbounded range divides to zero.
		overlapRatio := overlap / math.Max(gigRange, talentRange)
		return math.Min(overlapRatio*2, 1.0) // Boost overlap score
	}

	// Gig pays below the talent's floor.
	if gigMax < talentMin {
		gap := talentMin - gigMax
		return math.Max(0, 1-(gap/math.Max(talentMax-talentMin, gigMax))*2)
	}

	// Gig starts above the talent's ceiling.
	if gigMin > talentMax {
		gap := gigMin - talentMax
		return math.Max(0, 1-(gap/math.Max(gigMax-gigMin, talentMax))*2)
	}

	return 0.3
}

// budgetBounds resolves optional bounds to a concrete interval.
func budgetBounds(min, max *float64) (float64, float64) {
	lo, hi := 0.0, math.Inf(1)
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	return lo, hi
}

// Experience scores seniority from years of experience, with bonuses for
// completed projects and client rating.
func Experience(t model.Talent) float64 {
	var base float64
	switch {
	case t.ExperienceYears >= 5:
		base = 1.0
	case t.ExperienceYears >= 3:
		base = 0.8
	case t.ExperienceYears >= 1:
		base = 0.6
	default:
		base = 0.3
	}

	projectBonus := math.Min(float64(t.TotalProjects)*0.05, 0.2)

	var ratingBonus float64
	if t.Rating > 0 {
		ratingBonus = (t.Rating / 5) * 0.2
	}

	return math.Min(base+projectBonus+ratingBonus, 1.0)
}

// Availability scores the talent's current availability status. Unknown
// statuses score zero.
func Availability(t model.Talent) float64 {
	switch t.Availability {
	case model.Available:
		return 1.0
	case model.PartiallyAvailable:
		return 0.6
	case model.Busy:
		return 0.2
	default:
		return 0.0
	}
}

var nonWord = regexp.MustCompile(`\W+`)

// GigText builds the gig's text blob for semantic comparison.
func GigText(gig model.Gig) string {
	return gig.Title + " " + gig.Description + " " + strings.Join(gig.StylePreferences, " ")
}

// TalentText builds the talent's text blob for semantic comparison.
func TalentText(t model.Talent) string {
	return t.Bio + " " + strings.Join(t.Skills, " ") + " " + strings.Join(t.Categories, " ")
}

// SemanticFallback scores textual similarity between the gig and talent blobs
// by token overlap. It is the deterministic local substitute used whenever the
// embedding provider is absent or failing.
func SemanticFallback(gig model.Gig, t model.Talent) float64 {
	gigWords := tokenize(GigText(gig))
	talentWords := tokenize(TalentText(t))

	talentSet := make(map[string]struct{}, len(talentWords))
	for _, w := range talentWords {
		talentSet[w] = struct{}{}
	}

	var common int
	for _, w := range gigWords {
		if _, ok := talentSet[w]; ok {
			common++
		}
	}

	denom := math.Max(math.Max(float64(len(gigWords)), float64(len(talentWords))), 1)
	return math.Min(float64(common)/denom*2, 1.0) // Boost the score
}

// tokenize splits on non-word runs, lower-cases, and drops short tokens.
func tokenize(text string) []string {
	var out []string
	for _, w := range nonWord.Split(strings.ToLower(text), -1) {
		if len(w) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// CosineSimilarity returns the cosine similarity of two vectors, or 0 when
// either vector is missing, empty, or of mismatched length.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SemanticFromVectors maps embedding cosine similarity into the [0, 1]
// semantic slot the aggregator expects.
func SemanticFromVectors(a, b []float64) float64 {
	return math.Min(math.Max(CosineSimilarity(a, b), 0), 1)
}

// Overall combines a score set into the weighted overall score, rounded to
// three decimal places. A criterion missing from the set contributes zero.
func Overall(scores model.ScoreSet) float64 {
	var total float64
	for criterion, weight := range Weights {
		total += scores[criterion] * weight
	}
	return math.Round(total*1000) / 1000
}
