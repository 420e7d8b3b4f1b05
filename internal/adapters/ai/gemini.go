package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultEmbeddingModel = "gemini-embedding-001"

	// Embedding inputs are truncated to stay inside the model's token limit.
	maxEmbedChars = 8000
)

// Gemini embeds text through the Google GenAI API.
type Gemini struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates an embedder backed by the Gemini API.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrUnavailable)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultEmbeddingModel
	}

	return &Gemini{client: client, modelName: model}, nil
}

// Embed returns the embedding vector for text.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float64, error) {
	if len(text) > maxEmbedChars {
		text = text[:maxEmbedChars]
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.modelName, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, ErrEmptyResponse
	}

	values := resp.Embeddings[0].Values
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}

	return out, nil
}
