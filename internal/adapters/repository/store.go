// Package repository provides persistence for gigs, talents, matches, and
// feedback. Two implementations exist: a Postgres store for production and an
// in-memory store for tests and local runs.
package repository

import (
	"context"

	"github.com/breadbutter/matchd/internal/domain/model"
)

// Store is the persistence surface the matching service depends on.
type Store interface {
	// Gig returns a single gig by id, or ErrNotFound.
	Gig(ctx context.Context, id int64) (model.Gig, error)
	// AvailableTalents returns the current candidate pool in a stable order.
	AvailableTalents(ctx context.Context) ([]model.Talent, error)
	// ReplaceMatches atomically swaps the stored match set for a gig.
	// Readers never observe a partially written set.
	ReplaceMatches(ctx context.Context, gigID int64, matches []model.Match) error
	// MatchesForGig returns stored matches joined with their talents,
	// highest score first.
	MatchesForGig(ctx context.Context, gigID int64) ([]SavedMatch, error)
	// SetMatchStatus updates one match's workflow status, or ErrNotFound.
	SetMatchStatus(ctx context.Context, matchID string, status model.MatchStatus) error
	// UpsertFeedback records client feedback for a match, replacing any
	// earlier rating for the same match.
	UpsertFeedback(ctx context.Context, fb model.Feedback) (model.Feedback, error)
	// Close releases the store's resources.
	Close()
}

// SavedMatch is a stored match joined with the matched talent profile.
type SavedMatch struct {
	Match  model.Match
	Talent model.Talent
}
