package match

import (
	"strings"

	"tendermap/pkg/schema"
)

// technicalSignals mark qualification strings that carry matchable technical
// content. Boilerplate eligibility items (tax clearance, company registration)
// contain none of these and are filtered out before embedding.
var technicalSignals = []string{
	"attestation",
	"certification",
	"certificate",
	"specialized service",
}

// CollectRequirements flattens an extraction record into the deduplicated,
// ordered list of requirements the matching engine works on: object
// requirements first in notice order, then qualification requirements grouped
// by category in the fixed category order. Whitespace-only entries are
// dropped; duplicates keep their first occurrence.
func CollectRequirements(extracted *schema.ExtractedRequirements) []schema.MatchableRequirement {
	var out []schema.MatchableRequirement
	seen := make(map[string]struct{})

	add := func(text string, category schema.RequirementCategory) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		out = append(out, schema.MatchableRequirement{Text: text, Category: category})
	}

	for _, req := range extracted.ObjectRequirements {
		text := req.Description
		if len(req.Details) > 0 {
			text += " " + strings.Join(req.Details, " ")
		}
		add(text, schema.CategoryTechnicalObject)
	}

	for _, category := range schema.QualificationCategories {
		for _, item := range extracted.QualificationRequirements[category] {
			if hasTechnicalSignal(item) {
				add(item, schema.CategoryGeneralQualification)
			}
		}
	}

	return out
}

func hasTechnicalSignal(item string) bool {
	lowered := strings.ToLower(item)
	for _, signal := range technicalSignals {
		if strings.Contains(lowered, signal) {
			return true
		}
	}
	return false
}
