package match

import (
	"context"
	"fmt"

	"tendermap/internal/embedding"
	"tendermap/pkg/schema"
)

// Engine cross-references extracted requirements against the asset catalogue.
// It is stateless: every call is an independent computation over its inputs.
type Engine struct {
	gateway embedding.Gateway
}

// NewEngine creates a matching engine backed by the given embedding gateway.
func NewEngine(gateway embedding.Gateway) *Engine {
	return &Engine{gateway: gateway}
}

// CrossReference produces the compliance report for one extraction record and
// one asset catalogue. Both sides are embedded in a single batched gateway
// call each. An empty catalogue or a record with no matchable requirements
// degrades to an empty report without touching the gateway; a gateway failure
// propagates unchanged to the caller.
func (e *Engine) CrossReference(
	ctx context.Context,
	extracted *schema.ExtractedRequirements,
	assets []schema.AssetRecord,
) (schema.ComplianceReport, error) {
	requirements := CollectRequirements(extracted)
	if len(requirements) == 0 || len(assets) == 0 {
		return schema.NewComplianceReport(nil), nil
	}

	assetTexts := make([]string, len(assets))
	for i, a := range assets {
		assetTexts[i] = a.MatchText()
	}
	assetVectors, err := e.gateway.Embed(ctx, assetTexts)
	if err != nil {
		return schema.ComplianceReport{}, fmt.Errorf("embed asset catalogue: %w", err)
	}

	reqTexts := make([]string, len(requirements))
	for i, r := range requirements {
		reqTexts[i] = r.Text
	}
	reqVectors, err := e.gateway.Embed(ctx, reqTexts)
	if err != nil {
		return schema.ComplianceReport{}, fmt.Errorf("embed requirements: %w", err)
	}

	verdicts := make([]schema.ComplianceVerdict, 0, len(requirements))
	for i, req := range requirements {
		bestIdx, bestScore := Rank(reqVectors[i], assetVectors)
		var best *schema.AssetRecord
		if bestIdx != NoMatch {
			best = &assets[bestIdx]
		}
		verdicts = append(verdicts, Classify(req, best, bestScore))
	}
	return schema.NewComplianceReport(verdicts), nil
}
