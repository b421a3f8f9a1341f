package embedding

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
)

// VertexConfig configures the Vertex AI embedder.
type VertexConfig struct {
	ProjectID string
	Location  string
	Model     string
}

// VertexGateway embeds text through a Vertex AI embedding model via Genkit.
type VertexGateway struct {
	g        *genkit.Genkit
	embedder ai.Embedder
}

// NewVertexGateway initializes Genkit with the Vertex AI plugin and resolves
// the configured embedding model.
func NewVertexGateway(ctx context.Context, cfg VertexConfig) (*VertexGateway, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("vertex project ID is required")
	}
	if cfg.Location == "" {
		cfg.Location = "us-central1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-004"
	}

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.VertexAI{
		ProjectID: cfg.ProjectID,
		Location:  cfg.Location,
	}))

	embedder := googlegenai.VertexAIEmbedder(g, cfg.Model)
	if embedder == nil {
		return nil, fmt.Errorf("vertex embedder %q not available", cfg.Model)
	}
	return &VertexGateway{g: g, embedder: embedder}, nil
}

// Embed returns one vector per input text, preserving order.
func (v *VertexGateway) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	resp, err := genkit.Embed(ctx, v.g, ai.WithEmbedder(v.embedder), ai.WithTextDocs(texts...))
	if err != nil {
		return nil, fmt.Errorf("vertex embed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("vertex embed returned %d vectors, want %d", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float64, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vec := make([]float64, len(emb.Embedding))
		for j, f := range emb.Embedding {
			vec[j] = float64(f)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
