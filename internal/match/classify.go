package match

import (
	"fmt"
	"strings"

	"tendermap/pkg/schema"
)

// SimilarityThreshold is the minimum cosine score at which a ranked match is
// trusted enough to run the compliance rules.
const SimilarityThreshold = 0.8

// Remediation actions attached to verdicts.
const (
	ActionNone       = "none"
	ActionAppeal     = "elaborate in the appeal"
	ActionFallback   = "find alternative solution or file a challenge"
	ActionAIEvidence = "seek AI-specific evidence or develop capability"
)

// evidenceNone is the evidence placeholder for unmet requirements.
const evidenceNone = "—"

// evidenceAIMissing is the evidence used when an AI requirement matched an
// asset that carries no AI proof.
const evidenceAIMissing = "matched asset carries no artificial intelligence evidence"

// techTerms are the canonical technology labels checked by the tech-term rule.
var techTerms = []string{
	"google cloud platform",
	"google workspace",
	"robot",
	"artificial intelligence",
}

// ruleContext carries the precomputed facts the rules decide on.
type ruleContext struct {
	req   schema.MatchableRequirement
	asset schema.AssetRecord

	normReq      string
	normProducts string
	normSummary  string

	loweredReq   string
	contractType string
	techMatch    bool
}

// rule is one step of the ordered decision sequence. Rules run left to right
// and a later applicable rule overrides the verdict of an earlier one.
type rule struct {
	name  string
	apply func(*ruleContext, *schema.ComplianceVerdict)
}

var rules = []rule{
	{name: "direct-match", apply: directMatchRule},
	{name: "indirect-combination", apply: indirectCombinationRule},
	{name: "ai-override", apply: aiOverrideRule},
}

// Classify decides the compliance verdict for one requirement given its best
// matching asset and similarity score. A nil asset or a score below the
// threshold keeps the default unmet verdict; otherwise the rule sequence runs.
func Classify(req schema.MatchableRequirement, asset *schema.AssetRecord, score float64) schema.ComplianceVerdict {
	verdict := schema.ComplianceVerdict{
		RequirementText: req.Text,
		Category:        req.Category,
		Status:          schema.StatusUnmet,
		Evidence:        evidenceNone,
		ActionNeeded:    ActionFallback,
	}

	// Threshold gate: similarity too weak to trust, no rule fires.
	if asset == nil || score < SimilarityThreshold {
		return verdict
	}

	ctx := &ruleContext{
		req:          req,
		asset:        *asset,
		normReq:      Normalize(req.Text),
		normProducts: Normalize(asset.ConcatenatedProducts),
		normSummary:  Normalize(asset.ConsolidatedSummary),
		loweredReq:   strings.ToLower(req.Text),
		contractType: strings.ToLower(strings.TrimSpace(asset.ContractType)),
	}
	ctx.techMatch = techTermMatch(ctx)

	for _, r := range rules {
		r.apply(ctx, &verdict)
	}
	return verdict
}

// techTermMatch reports whether a recognized technology term appears in the
// normalized requirement and in either normalized asset field.
func techTermMatch(ctx *ruleContext) bool {
	for _, term := range techTerms {
		if !strings.Contains(ctx.normReq, term) {
			continue
		}
		if strings.Contains(ctx.normProducts, term) || strings.Contains(ctx.normSummary, term) {
			return true
		}
	}
	return false
}

// directMatchRule: the asset's contract type is compatible with how the
// requirement is phrased — a plain contract for a non-attestation requirement,
// an attestation for an attestation requirement.
func directMatchRule(ctx *ruleContext, verdict *schema.ComplianceVerdict) {
	if !ctx.techMatch {
		return
	}
	wantsAttestation := strings.Contains(ctx.loweredReq, "attestation")
	compatible := (ctx.contractType == schema.ContractTypeContract && !wantsAttestation) ||
		(ctx.contractType == schema.ContractTypeAttestation && wantsAttestation)
	if !compatible {
		return
	}
	verdict.Status = schema.StatusSatisfied
	verdict.Evidence = assetEvidence(ctx.asset)
	verdict.ActionNeeded = ActionNone
}

// indirectCombinationRule: the requirement can be covered by combining a
// contract (or statement of work) with a SOW referenced in the asset products.
func indirectCombinationRule(ctx *ruleContext, verdict *schema.ComplianceVerdict) {
	if !ctx.techMatch || verdict.Status == schema.StatusSatisfied {
		return
	}
	if ctx.contractType != schema.ContractTypeContract && ctx.contractType != schema.ContractTypeStatementOfWork {
		return
	}
	if !mentionsSOW(ctx.asset.ConcatenatedProducts) {
		return
	}
	verdict.Status = schema.StatusSatisfiedIndirectly
	verdict.Evidence = fmt.Sprintf("%s + SOW - %s - %s",
		ctx.asset.ContractType, ctx.asset.OrganizationName, ctx.asset.ContractYear)
	verdict.ActionNeeded = ActionAppeal
}

// aiOverrideRule treats AI requirements as a stricter sub-requirement: proof
// of AI in the asset upgrades the verdict even from unmet; absence of proof
// downgrades to unmet even past a match earned on another technology term.
func aiOverrideRule(ctx *ruleContext, verdict *schema.ComplianceVerdict) {
	if !mentionsAI(ctx.req.Text) {
		return
	}
	if assetMentionsAI(ctx.asset) {
		verdict.Status = schema.StatusSatisfied
		verdict.Evidence = assetEvidence(ctx.asset) + " (with AI)"
		verdict.ActionNeeded = ActionNone
		return
	}
	// AI is a stricter sub-requirement: without AI evidence in the asset the
	// requirement is unmet even when an earlier rule matched on another term.
	verdict.Status = schema.StatusUnmet
	verdict.Evidence = evidenceAIMissing
	verdict.ActionNeeded = ActionAIEvidence
}

// mentionsAI detects an artificial-intelligence reference in text, spelled
// out or as the short form.
func mentionsAI(text string) bool {
	t := strings.ToLower(text)
	return strings.Contains(t, "artificial intelligence") || containsWord(t, "ai")
}

// assetMentionsAI checks the asset's product, summary and certification
// fields for AI evidence.
func assetMentionsAI(asset schema.AssetRecord) bool {
	return mentionsAI(asset.ConcatenatedProducts) ||
		mentionsAI(asset.ConsolidatedSummary) ||
		mentionsAI(asset.CertificationsAndAIMentions)
}

// mentionsSOW detects a statement-of-work reference in asset product text.
func mentionsSOW(text string) bool {
	t := strings.ToLower(text)
	return containsWord(t, "sow") ||
		strings.Contains(t, "statement of work") ||
		strings.Contains(t, "statement-of-work")
}

// assetEvidence renders the standard evidence line for a matched asset.
func assetEvidence(asset schema.AssetRecord) string {
	return fmt.Sprintf("%s - %s - %s", asset.ContractType, asset.OrganizationName, asset.ContractYear)
}
