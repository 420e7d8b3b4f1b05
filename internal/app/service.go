// Package service provides the matching engine that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/breadbutter/matchd/internal/adapters/ai"
	"github.com/breadbutter/matchd/internal/adapters/repository"
	"github.com/breadbutter/matchd/internal/domain/explain"
	"github.com/breadbutter/matchd/internal/domain/model"
	"github.com/breadbutter/matchd/internal/domain/scoring"
	"github.com/breadbutter/matchd/pkg/logger"
	"github.com/breadbutter/matchd/pkg/metrics"
)

const (
	// MinOverallScore is the hard quality floor. Candidates scoring below
	// it are never persisted or returned, regardless of the limit.
	MinOverallScore = 0.30

	// DefaultLimit applies when the caller does not request a limit.
	DefaultLimit = 10
	// MaxLimit caps how many matches a single run may return.
	MaxLimit = 50

	defaultWorkerCount  = 8
	defaultEmbedTimeout = 10 * time.Second
)

// Service runs the matching pipeline: load, score, rank, persist.
type Service struct {
	store    repository.Store
	embedder ai.Embedder

	workerCount  int
	defaultLimit int
	maxLimit     int
	embedTimeout time.Duration

	// One mutex per gig: concurrent runs for the same gig serialize,
	// runs for different gigs proceed in parallel.
	gigLocks sync.Map

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence backend. Required.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithEmbedder sets the optional embedding provider for semantic scoring.
func WithEmbedder(e ai.Embedder) Option {
	return func(s *Service) {
		s.embedder = e
	}
}

// WithWorkerCount sets the number of concurrent scoring workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithEmbedTimeout bounds each embedding call.
func WithEmbedTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.embedTimeout = d
		}
	}
}

// WithDefaultLimit sets the match count used when the caller requests none.
func WithDefaultLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.defaultLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service with the given options.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		workerCount:  defaultWorkerCount,
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
		embedTimeout: defaultEmbedTimeout,
		logger:       logger.Get(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		return nil, ErrNoStore
	}

	metrics.UpdateWorkerCount(s.workerCount)

	return s, nil
}

// Candidate is one ranked result of a match run.
type Candidate struct {
	Match  model.Match
	Talent model.Talent
	Rank   int
}

// Result is the outcome of a match run for one gig.
type Result struct {
	Gig     model.Gig
	Matches []Candidate
}

// scoredTalent is an intermediate scoring result before ranking.
type scoredTalent struct {
	talent  model.Talent
	scores  model.ScoreSet
	overall float64
}

// FindMatches scores every available talent against the gig, ranks the
// survivors, persists the new match set, and returns it. A limit of zero
// means the default; out-of-range limits are clamped.
func (s *Service) FindMatches(ctx context.Context, gigID int64, limit int) (*Result, error) {
	limit = s.clampLimit(limit)

	unlock := s.lockGig(gigID)
	defer unlock()

	start := time.Now()
	metrics.RecordMatchRun()

	gig, err := s.store.Gig(ctx, gigID)
	if err != nil {
		metrics.RecordMatchRunError()
		return nil, fmt.Errorf("loading gig %d: %w", gigID, err)
	}

	talents, err := s.store.AvailableTalents(ctx)
	if err != nil {
		metrics.RecordMatchRunError()
		return nil, fmt.Errorf("loading talent pool: %w", err)
	}
	metrics.UpdateTalentPoolSize(len(talents))

	var gigVec []float64
	if s.embedder != nil {
		gigVec = s.embedText(ctx, scoring.GigText(gig))
	}

	scored := s.scoreAll(ctx, gig, gigVec, talents)
	if err := ctx.Err(); err != nil {
		metrics.RecordMatchRunError()
		return nil, err
	}

	kept := make([]scoredTalent, 0, len(scored))
	for _, c := range scored {
		if c.overall >= MinOverallScore {
			kept = append(kept, c)
		}
	}
	metrics.RecordCandidatesScored(len(scored))
	metrics.RecordCandidatesDropped(len(scored) - len(kept))

	// Stable so equal scores keep the talent pool's fetch order.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].overall > kept[j].overall
	})
	if len(kept) > limit {
		kept = kept[:limit]
	}

	now := time.Now()
	matches := make([]model.Match, 0, len(kept))
	candidates := make([]Candidate, 0, len(kept))
	for i, c := range kept {
		match := model.Match{
			ID:           uuid.NewString(),
			GigID:        gig.ID,
			TalentID:     c.talent.ID,
			OverallScore: c.overall,
			Scores:       c.scores,
			Explanation:  explain.Build(c.talent, c.scores),
			Status:       model.MatchSuggested,
			CreatedAt:    now,
		}
		matches = append(matches, match)
		candidates = append(candidates, Candidate{Match: match, Talent: c.talent, Rank: i + 1})
	}

	if err := s.store.ReplaceMatches(ctx, gigID, matches); err != nil {
		metrics.RecordMatchRunError()
		return nil, fmt.Errorf("persisting matches for gig %d: %w", gigID, err)
	}
	metrics.RecordMatchesPersisted(len(matches))
	metrics.RecordMatchRunDuration(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "match run completed",
		logger.Int64("gig_id", gigID),
		logger.Int("pool", len(talents)),
		logger.Int("matches", len(matches)),
		logger.Int64("duration_ms", time.Since(start).Milliseconds()))

	return &Result{Gig: gig, Matches: candidates}, nil
}

// SavedMatches returns the stored match set for a gig, best first.
func (s *Service) SavedMatches(ctx context.Context, gigID int64) (*Result, error) {
	gig, err := s.store.Gig(ctx, gigID)
	if err != nil {
		return nil, fmt.Errorf("loading gig %d: %w", gigID, err)
	}

	saved, err := s.store.MatchesForGig(ctx, gigID)
	if err != nil {
		return nil, fmt.Errorf("loading matches for gig %d: %w", gigID, err)
	}

	candidates := make([]Candidate, 0, len(saved))
	for i, sm := range saved {
		candidates = append(candidates, Candidate{Match: sm.Match, Talent: sm.Talent, Rank: i + 1})
	}

	return &Result{Gig: gig, Matches: candidates}, nil
}

// SetMatchStatus moves a match through its workflow.
func (s *Service) SetMatchStatus(ctx context.Context, matchID string, status model.MatchStatus) error {
	if !model.ValidMatchStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.SetMatchStatus(ctx, matchID, status)
}

// SubmitFeedback records a 1-5 rating for a match, replacing any earlier one.
func (s *Service) SubmitFeedback(ctx context.Context, matchID string, rating int, text string) (model.Feedback, error) {
	if rating < 1 || rating > 5 {
		return model.Feedback{}, fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}
	return s.store.UpsertFeedback(ctx, model.Feedback{MatchID: matchID, Rating: rating, Text: text})
}

func (s *Service) clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return s.defaultLimit
	case limit > s.maxLimit:
		return s.maxLimit
	default:
		return limit
	}
}

func (s *Service) lockGig(gigID int64) func() {
	v, _ := s.gigLocks.LoadOrStore(gigID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// scoreAll fans the talent pool out over the scoring workers. Results land
// at their input index, so pool order is preserved for the stable sort.
func (s *Service) scoreAll(ctx context.Context, gig model.Gig, gigVec []float64, talents []model.Talent) []scoredTalent {
	if len(talents) == 0 {
		return nil
	}

	out := make([]scoredTalent, len(talents))
	jobs := make(chan int)

	workers := s.workerCount
	if workers > len(talents) {
		workers = len(talents)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = s.scoreOne(ctx, gig, gigVec, talents[i])
			}
		}()
	}

feed:
	for i := range talents {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return out
}

func (s *Service) scoreOne(ctx context.Context, gig model.Gig, gigVec []float64, t model.Talent) scoredTalent {
	start := time.Now()

	scores := model.ScoreSet{
		model.CriterionSkills:       scoring.Skills(gig, t),
		model.CriterionLocation:     scoring.Location(gig, t),
		model.CriterionBudget:       scoring.Budget(gig, t),
		model.CriterionExperience:   scoring.Experience(t),
		model.CriterionAvailability: scoring.Availability(t),
	}
	scores[model.CriterionSemantic] = s.semanticScore(ctx, gig, gigVec, t)

	overall := scoring.Overall(scores)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	return scoredTalent{talent: t, scores: scores, overall: overall}
}

// semanticScore prefers embeddings and degrades to token overlap whenever the
// provider is absent, the gig vector is missing, or the talent embed fails.
func (s *Service) semanticScore(ctx context.Context, gig model.Gig, gigVec []float64, t model.Talent) float64 {
	if s.embedder == nil || gigVec == nil {
		return scoring.SemanticFallback(gig, t)
	}

	vec := s.embedText(ctx, scoring.TalentText(t))
	if vec == nil {
		metrics.RecordEmbeddingFallback()
		return scoring.SemanticFallback(gig, t)
	}

	return scoring.SemanticFromVectors(gigVec, vec)
}

func (s *Service) embedText(ctx context.Context, text string) []float64 {
	metrics.RecordEmbeddingRequest()

	ctx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Warn(ctx, "embedding failed, falling back to token overlap", logger.Error(err))
		return nil
	}

	return vec
}
