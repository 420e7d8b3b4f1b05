// Package ai provides text embedding for semantic similarity scoring. The
// matching service treats the embedder as optional: when none is configured
// or a call fails, scoring falls back to local token overlap.
package ai

import (
	"context"
	"errors"
)

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

var (
	// ErrUnavailable indicates the embedding backend cannot serve requests.
	ErrUnavailable = errors.New("embedding backend unavailable")
	// ErrEmptyResponse indicates the backend returned no embedding.
	ErrEmptyResponse = errors.New("empty embedding response")
)
