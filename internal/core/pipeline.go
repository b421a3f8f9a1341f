package core

import (
	"context"
	"fmt"

	"tendermap/internal/assets"
	"tendermap/internal/match"
	"tendermap/pkg/schema"
)

// Extractor produces the structured requirements record for raw notice text.
// The production implementation lives in internal/extract; tests substitute
// a stub.
type Extractor interface {
	Extract(ctx context.Context, noticeText string) (*schema.ExtractedRequirements, error)
}

// StrategicAnalysis is the at-a-glance summary of the notice that accompanies
// the compliance map.
type StrategicAnalysis struct {
	Organization   string            `json:"organization"`
	Object         string            `json:"object"`
	JudgmentType   string            `json:"judgmentType"`
	EstimatedValue string            `json:"estimatedValue"`
	Dates          map[string]string `json:"dates"`
	Requirements   map[string]string `json:"extractedRequirementsSummary"`
}

// AnalysisResult is the outcome of one analysis request.
type AnalysisResult struct {
	ID              string                  `json:"id"`
	Strategic       StrategicAnalysis       `json:"analysis_strategic"`
	ComplianceMap   schema.ComplianceReport `json:"-"`
	ExtractionError string                  `json:"extraction_error,omitempty"`
}

// Pipeline runs one analysis request end to end: extraction, asset load,
// cross-reference. It holds no per-request state; concurrent Analyze calls
// are independent.
type Pipeline struct {
	extractor Extractor
	source    assets.Source
	engine    *match.Engine
	log       Logger
}

// NewPipeline assembles the analysis pipeline.
func NewPipeline(extractor Extractor, source assets.Source, engine *match.Engine, log Logger) *Pipeline {
	return &Pipeline{extractor: extractor, source: source, engine: engine, log: log}
}

// Analyze processes one notice text against the configured asset source.
// Extraction parse failures degrade to an extraction-only result; an
// unreachable asset source degrades to an empty compliance map; LLM and
// embedding gateway failures fail the whole request.
func (p *Pipeline) Analyze(ctx context.Context, noticeText string) (*AnalysisResult, error) {
	return p.AnalyzeWithSource(ctx, noticeText, p.source)
}

// AnalyzeWithSource runs one analysis against a caller-supplied catalogue
// source, used when a request overrides the configured sheet.
func (p *Pipeline) AnalyzeWithSource(ctx context.Context, noticeText string, source assets.Source) (*AnalysisResult, error) {
	id, err := schema.NewAnalysisID()
	if err != nil {
		return nil, fmt.Errorf("generate analysis ID: %w", err)
	}

	extracted, err := p.extractor.Extract(ctx, noticeText)
	if err != nil {
		return nil, &GatewayError{Gateway: "llm", Message: "requirement extraction failed", Err: err}
	}
	if extracted.ExtractionError != "" {
		p.log.Warn("extraction degraded", "analysis_id", id, "error", extracted.ExtractionError)
	}

	catalogue, err := source.Load(ctx)
	if err != nil {
		// Recoverable: extraction-only result with an empty compliance map.
		p.log.Warn("asset catalogue unavailable", "analysis_id", id, "error", err.Error())
		catalogue = nil
	}
	p.log.Info("analysis inputs ready",
		"analysis_id", id,
		"object_requirements", len(extracted.ObjectRequirements),
		"assets", len(catalogue),
	)

	report, err := p.engine.CrossReference(ctx, extracted, catalogue)
	if err != nil {
		return nil, &GatewayError{Gateway: "embedding", Message: "cross-reference failed", Err: err}
	}

	return &AnalysisResult{
		ID:              id,
		Strategic:       strategicAnalysis(extracted),
		ComplianceMap:   report,
		ExtractionError: extracted.ExtractionError,
	}, nil
}

// strategicAnalysis summarizes the extraction record for the response header.
func strategicAnalysis(extracted *schema.ExtractedRequirements) StrategicAnalysis {
	summary := map[string]string{}
	for category, reqs := range extracted.QualificationRequirements {
		for i, req := range reqs {
			summary[fmt.Sprintf("qualification/%s/%d", category, i+1)] = req
		}
	}
	for i, req := range extracted.ObjectRequirements {
		key := fmt.Sprintf("object/%d", i+1)
		value := req.Description
		if req.MinimumQuantity != "" && req.MinimumQuantity != schema.Sentinel {
			value += fmt.Sprintf(" (min. quantity: %s)", req.MinimumQuantity)
		}
		if req.RequiredCertification != "" && req.RequiredCertification != schema.Sentinel {
			value += fmt.Sprintf(" (certification: %s)", req.RequiredCertification)
		}
		summary[key] = value
	}

	return StrategicAnalysis{
		Organization:   extracted.Organization,
		Object:         extracted.Object,
		JudgmentType:   extracted.JudgmentType,
		EstimatedValue: extracted.EstimatedValue,
		Dates:          extracted.Dates,
		Requirements:   summary,
	}
}
