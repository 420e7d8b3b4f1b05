package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/breadbutter/matchd/internal/domain/model"
)

// Memory is an in-memory Store used in tests and for local runs without a
// database. All methods are safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	gigs     map[int64]model.Gig
	talents  map[int64]model.Talent
	matches  map[int64][]model.Match // keyed by gig id
	feedback map[string]model.Feedback // keyed by match id

	nextGigID    int64
	nextTalentID int64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		gigs:     make(map[int64]model.Gig),
		talents:  make(map[int64]model.Talent),
		matches:  make(map[int64][]model.Match),
		feedback: make(map[string]model.Feedback),
	}
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}

// AddGig stores a gig, assigning an id when the gig has none.
func (m *Memory) AddGig(gig model.Gig) model.Gig {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gig.ID == 0 {
		m.nextGigID++
		gig.ID = m.nextGigID
	} else if gig.ID > m.nextGigID {
		m.nextGigID = gig.ID
	}
	if gig.CreatedAt.IsZero() {
		gig.CreatedAt = time.Now()
	}
	m.gigs[gig.ID] = gig
	return gig
}

// AddTalent stores a talent profile, assigning an id when it has none.
func (m *Memory) AddTalent(t model.Talent) model.Talent {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.ID == 0 {
		m.nextTalentID++
		t.ID = m.nextTalentID
	} else if t.ID > m.nextTalentID {
		m.nextTalentID = t.ID
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	m.talents[t.ID] = t
	return t
}

// SeedSample loads the same sample profiles the Postgres seeder inserts,
// for local runs without a database.
func (m *Memory) SeedSample() {
	date := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return &t
	}
	days := func(n int) *int { return &n }
	amount := func(v float64) *float64 { return &v }

	m.AddTalent(model.Talent{
		Name:            "Kavya Menon",
		Email:           "kavya@photographer.com",
		City:            "Goa",
		Categories:      []string{"Photography", "Travel"},
		Skills:          []string{"Portrait Photography", "Travel Photography", "Natural Light", "Candid Shots", "Sustainable Fashion"},
		ExperienceYears: 3,
		MinBudget:       amount(50000),
		MaxBudget:       amount(100000),
		PortfolioLinks:  []string{"https://instagram.com/kavyalens", "https://kavyamenon.com"},
		Bio:             "Passionate travel photographer specializing in sustainable fashion and natural portraits. Based in Goa with 3+ years experience.",
		InstagramHandle: "@kavyalens",
		Availability:    model.Available,
	})
	m.AddTalent(model.Talent{
		Name:            "Rohan Singh",
		Email:           "rohan@designer.com",
		City:            "Mumbai",
		Categories:      []string{"Design", "UI/UX"},
		Skills:          []string{"UI Design", "Brand Identity", "Mobile App Design", "Figma", "Adobe Creative Suite"},
		ExperienceYears: 4,
		MinBudget:       amount(75000),
		MaxBudget:       amount(150000),
		PortfolioLinks:  []string{"https://behance.net/rohansingh", "https://rohandesigns.com"},
		Bio:             "Senior UI/UX designer with expertise in mobile apps and brand identity. 4 years of startup experience.",
		InstagramHandle: "@rohandesigns",
		Availability:    model.Available,
	})
	m.AddTalent(model.Talent{
		Name:            "Anisha Reddy",
		Email:           "anisha@videographer.com",
		City:            "Hyderabad",
		Categories:      []string{"Videography", "Film"},
		Skills:          []string{"Corporate Videos", "Product Photography", "Video Editing", "Drone Photography", "Commercial Shoots"},
		ExperienceYears: 2,
		MinBudget:       amount(60000),
		MaxBudget:       amount(120000),
		PortfolioLinks:  []string{"https://vimeo.com/anishareddy", "https://anishacreates.com"},
		Bio:             "Creative videographer specializing in corporate and product content. Drone certified with 2+ years experience.",
		InstagramHandle: "@anishacreates",
		Availability:    model.Available,
	})

	m.AddGig(model.Gig{
		ClientID:               1,
		Title:                  "Sustainable Fashion Campaign Shoot",
		Description:            "Looking for a travel photographer in Goa for 3 days in November for a sustainable fashion brand. Need pastel tones and candid portraits.",
		Category:               "Photography",
		RequiredSkills:         []string{"Travel Photography", "Fashion Photography", "Portrait Photography", "Natural Light"},
		Location:               "Goa",
		StartDate:              date("2024-11-15"),
		DurationDays:           days(3),
		MinBudget:              amount(70000),
		MaxBudget:              amount(90000),
		StylePreferences:       []string{"Pastel Tones", "Candid Portraits", "Natural Light", "Sustainable Fashion"},
		AdditionalRequirements: "Must have experience with sustainable fashion brands. Portfolio review required.",
		Status:                 model.GigOpen,
		Urgency:                model.UrgencyMedium,
	})
	m.AddGig(model.Gig{
		ClientID:               2,
		Title:                  "Mobile App UI Design",
		Description:            "Need a UI/UX designer to create modern mobile app interface for a fintech startup. Clean, minimal design preferred.",
		Category:               "Design",
		RequiredSkills:         []string{"UI Design", "Mobile App Design", "Figma", "User Experience"},
		Location:               "Remote",
		IsRemote:               true,
		StartDate:              date("2024-12-01"),
		DurationDays:           days(14),
		MinBudget:              amount(80000),
		MaxBudget:              amount(120000),
		StylePreferences:       []string{"Minimal Design", "Modern UI", "Fintech Style"},
		AdditionalRequirements: "Must have fintech or financial app experience. Figma proficiency required.",
		Status:                 model.GigOpen,
		Urgency:                model.UrgencyMedium,
	})
	m.AddGig(model.Gig{
		ClientID:               3,
		Title:                  "Product Video Campaign",
		Description:            "Create engaging product videos for organic food brand launch. Need someone who can handle both shooting and editing.",
		Category:               "Videography",
		RequiredSkills:         []string{"Product Photography", "Video Editing", "Commercial Shoots"},
		Location:               "Delhi",
		StartDate:              date("2024-11-30"),
		DurationDays:           days(5),
		MinBudget:              amount(65000),
		MaxBudget:              amount(85000),
		StylePreferences:       []string{"Clean Aesthetics", "Natural Lighting", "Food Styling"},
		AdditionalRequirements: "Experience with food photography/videography essential. Should provide editing services.",
		Status:                 model.GigOpen,
		Urgency:                model.UrgencyMedium,
	})
}

func (m *Memory) Gig(_ context.Context, id int64) (model.Gig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gig, ok := m.gigs[id]
	if !ok {
		return model.Gig{}, ErrNotFound
	}
	return gig, nil
}

func (m *Memory) AvailableTalents(_ context.Context) ([]model.Talent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Talent
	for _, t := range m.talents {
		if t.Availability == model.Available {
			out = append(out, t)
		}
	}
	// Most recently created first, matching the durable store's listing order.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *Memory) ReplaceMatches(_ context.Context, gigID int64, matches []model.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Feedback for replaced matches goes with them, as a cascade would.
	for _, old := range m.matches[gigID] {
		delete(m.feedback, old.ID)
	}

	stored := make([]model.Match, len(matches))
	for i, match := range matches {
		if match.ID == "" {
			match.ID = uuid.NewString()
		}
		if match.CreatedAt.IsZero() {
			match.CreatedAt = time.Now()
		}
		match.Scores = match.Scores.Clone()
		stored[i] = match
	}
	m.matches[gigID] = stored
	return nil
}

func (m *Memory) MatchesForGig(_ context.Context, gigID int64) ([]SavedMatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.matches[gigID]
	if len(stored) == 0 {
		return nil, nil
	}

	out := make([]SavedMatch, 0, len(stored))
	for _, match := range stored {
		match.Scores = match.Scores.Clone()
		out = append(out, SavedMatch{Match: match, Talent: m.talents[match.TalentID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.OverallScore > out[j].Match.OverallScore
	})
	return out, nil
}

func (m *Memory) SetMatchStatus(_ context.Context, matchID string, status model.MatchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for gigID, stored := range m.matches {
		for i, match := range stored {
			if match.ID == matchID {
				stored[i].Status = status
				m.matches[gigID] = stored
				return nil
			}
		}
	}
	return ErrNotFound
}

func (m *Memory) UpsertFeedback(_ context.Context, fb model.Feedback) (model.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.matchExists(fb.MatchID) {
		return model.Feedback{}, ErrNotFound
	}

	stored := model.Feedback{
		ID:        uuid.NewString(),
		MatchID:   fb.MatchID,
		Rating:    fb.Rating,
		Text:      fb.Text,
		CreatedAt: time.Now(),
	}
	if prev, ok := m.feedback[fb.MatchID]; ok {
		stored.ID = prev.ID
		stored.CreatedAt = prev.CreatedAt
	}
	m.feedback[fb.MatchID] = stored
	return stored, nil
}

func (m *Memory) matchExists(matchID string) bool {
	for _, stored := range m.matches {
		for _, match := range stored {
			if match.ID == matchID {
				return true
			}
		}
	}
	return false
}
