package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/breadbutter/matchd/internal/domain/model"
	"github.com/breadbutter/matchd/pkg/metrics"
)

const (
	gigColumns = `id, client_id, title, description, category, required_skills, location,
		is_remote, start_date, end_date, duration_days, min_budget, max_budget,
		style_preferences, additional_requirements, status, urgency_level, created_at`

	talentColumns = `id, name, email, city, categories, skills, experience_years,
		min_budget, max_budget, portfolio_links, bio, instagram_handle,
		availability_status, rating, total_projects, created_at`
)

// Postgres is the production Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database at uri and verifies the connection.
func NewPostgres(ctx context.Context, uri string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(uri)
	if err != nil {
		return nil, fmt.Errorf("parsing db uri: %w", err)
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func observe(op string, start time.Time, err error) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreError(op)
	}
}

func (p *Postgres) Gig(ctx context.Context, id int64) (gig model.Gig, err error) {
	start := time.Now()
	defer func() { observe("gig", start, err) }()

	rows, err := p.pool.Query(ctx, "SELECT "+gigColumns+" FROM gigs WHERE id = $1", id)
	if err != nil {
		return model.Gig{}, err
	}
	defer rows.Close()

	if err = pgxscan.ScanOne(&gig, rows); err != nil {
		if pgxscan.NotFound(err) {
			return model.Gig{}, ErrNotFound
		}
		return model.Gig{}, err
	}

	return gig, nil
}

func (p *Postgres) AvailableTalents(ctx context.Context) (talents []model.Talent, err error) {
	start := time.Now()
	defer func() { observe("available_talents", start, err) }()

	rows, err := p.pool.Query(ctx,
		"SELECT "+talentColumns+" FROM talents WHERE availability_status = $1 ORDER BY created_at DESC, id DESC",
		model.Available)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err = pgxscan.ScanAll(&talents, rows); err != nil {
		return nil, err
	}

	return talents, nil
}

func (p *Postgres) ReplaceMatches(ctx context.Context, gigID int64, matches []model.Match) (err error) {
	start := time.Now()
	defer func() { observe("replace_matches", start, err) }()

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, "DELETE FROM matches WHERE gig_id = $1", gigID); err != nil {
		return err
	}

	for _, m := range matches {
		id := m.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = tx.Exec(ctx, `INSERT INTO matches
			(id, gig_id, talent_id, overall_score, skill_score, location_score,
			 budget_score, experience_score, availability_score, semantic_score,
			 explanation, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			id, gigID, m.TalentID, m.OverallScore,
			m.Scores[model.CriterionSkills],
			m.Scores[model.CriterionLocation],
			m.Scores[model.CriterionBudget],
			m.Scores[model.CriterionExperience],
			m.Scores[model.CriterionAvailability],
			m.Scores[model.CriterionSemantic],
			m.Explanation, m.Status)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// matchRow flattens the matches table for scanning.
type matchRow struct {
	ID                string    `db:"id"`
	GigID             int64     `db:"gig_id"`
	TalentID          int64     `db:"talent_id"`
	OverallScore      float64   `db:"overall_score"`
	SkillScore        float64   `db:"skill_score"`
	LocationScore     float64   `db:"location_score"`
	BudgetScore       float64   `db:"budget_score"`
	ExperienceScore   float64   `db:"experience_score"`
	AvailabilityScore float64   `db:"availability_score"`
	SemanticScore     float64   `db:"semantic_score"`
	Explanation       string    `db:"explanation"`
	Status            string    `db:"status"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r matchRow) toMatch() model.Match {
	return model.Match{
		ID:           r.ID,
		GigID:        r.GigID,
		TalentID:     r.TalentID,
		OverallScore: r.OverallScore,
		Scores: model.ScoreSet{
			model.CriterionSkills:       r.SkillScore,
			model.CriterionLocation:     r.LocationScore,
			model.CriterionBudget:       r.BudgetScore,
			model.CriterionExperience:   r.ExperienceScore,
			model.CriterionAvailability: r.AvailabilityScore,
			model.CriterionSemantic:     r.SemanticScore,
		},
		Explanation: r.Explanation,
		Status:      model.MatchStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func (p *Postgres) MatchesForGig(ctx context.Context, gigID int64) (saved []SavedMatch, err error) {
	start := time.Now()
	defer func() { observe("matches_for_gig", start, err) }()

	rows, err := p.pool.Query(ctx, `SELECT id, gig_id, talent_id, overall_score,
		skill_score, location_score, budget_score, experience_score,
		availability_score, semantic_score, explanation, status, created_at
		FROM matches WHERE gig_id = $1 ORDER BY overall_score DESC`, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matchRows []matchRow
	if err = pgxscan.ScanAll(&matchRows, rows); err != nil {
		return nil, err
	}
	if len(matchRows) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(matchRows))
	for _, r := range matchRows {
		ids = append(ids, r.TalentID)
	}

	talentRows, err := p.pool.Query(ctx,
		"SELECT "+talentColumns+" FROM talents WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, err
	}
	defer talentRows.Close()

	var talents []model.Talent
	if err = pgxscan.ScanAll(&talents, talentRows); err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Talent, len(talents))
	for _, t := range talents {
		byID[t.ID] = t
	}

	saved = make([]SavedMatch, 0, len(matchRows))
	for _, r := range matchRows {
		saved = append(saved, SavedMatch{Match: r.toMatch(), Talent: byID[r.TalentID]})
	}

	return saved, nil
}

func (p *Postgres) SetMatchStatus(ctx context.Context, matchID string, status model.MatchStatus) (err error) {
	start := time.Now()
	defer func() { observe("set_match_status", start, err) }()

	tag, err := p.pool.Exec(ctx, "UPDATE matches SET status = $1 WHERE id = $2", status, matchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *Postgres) UpsertFeedback(ctx context.Context, fb model.Feedback) (out model.Feedback, err error) {
	start := time.Now()
	defer func() { observe("upsert_feedback", start, err) }()

	var exists bool
	check, err := p.pool.Query(ctx, "SELECT EXISTS (SELECT 1 FROM matches WHERE id = $1)", fb.MatchID)
	if err != nil {
		return model.Feedback{}, err
	}
	defer check.Close()
	if err = pgxscan.ScanOne(&exists, check); err != nil {
		return model.Feedback{}, err
	}
	if !exists {
		return model.Feedback{}, ErrNotFound
	}

	rows, err := p.pool.Query(ctx, `INSERT INTO feedback (id, match_id, rating, feedback_text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_id) DO UPDATE
			SET rating = EXCLUDED.rating, feedback_text = EXCLUDED.feedback_text
		RETURNING id, match_id, rating, feedback_text, created_at`,
		uuid.NewString(), fb.MatchID, fb.Rating, fb.Text)
	if err != nil {
		return model.Feedback{}, err
	}
	defer rows.Close()

	if err = pgxscan.ScanOne(&out, rows); err != nil {
		return model.Feedback{}, err
	}

	return out, nil
}
