// Package extract turns raw procurement notice text into the structured
// requirements record the matching engine consumes.
package extract

import (
	"context"
	"errors"
	"log/slog"

	"tendermap/internal/llm"
	"tendermap/pkg/schema"
)

// Extractor extracts structured requirements records through an LLM client.
type Extractor struct {
	client *llm.Client
}

// NewExtractor wraps an LLM client for notice extraction.
func NewExtractor(client *llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract produces the structured requirements record for raw notice text.
// Parse failures that survive the repair-and-retry loop are absorbed into a
// degraded record carrying the raw output and an error marker; only
// network/API failures propagate as errors.
func (e *Extractor) Extract(ctx context.Context, noticeText string) (*schema.ExtractedRequirements, error) {
	prompt := llm.BuildExtractionPrompt(noticeText)

	validate := func(output *schema.ExtractedRequirements) error {
		return output.Validate()
	}

	result, err := llm.GenerateStructured[schema.ExtractedRequirements](
		e.client,
		ctx,
		"", // default model from config
		prompt,
		validate,
	)
	if err != nil {
		var llmErr *llm.LLMError
		if errors.As(err, &llmErr) && llmErr.Terminal() {
			return nil, err
		}
		// Degraded result: unparsable or invalid output after retries. The
		// caller proceeds with an empty requirements record, never a crash.
		slog.Warn("extraction degraded to empty requirements", "error", err.Error())
		degraded := &schema.ExtractedRequirements{
			ExtractionError: err.Error(),
			RawOutput:       rawOutputOf(err),
		}
		degraded.ApplyDefaults()
		return degraded, nil
	}

	result.ApplyDefaults()
	return result, nil
}

// rawOutputOf digs the unparsed model output out of a parse error, if any.
func rawOutputOf(err error) string {
	var llmErr *llm.LLMError
	if errors.As(err, &llmErr) && llmErr.Type == llm.ErrorTypeParse {
		return llmErr.Message
	}
	return ""
}
