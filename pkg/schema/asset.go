package schema

// AssetRecord is one row of the delivered-assets catalogue: a prior contract,
// attestation or certification usable as compliance evidence. All text fields
// may be empty; the matching engine treats empty text as "no evidence here".
type AssetRecord struct {
	ID                          string `json:"id"`
	ContractType                string `json:"contractType"`
	OrganizationName            string `json:"organizationName"`
	ContractYear                string `json:"contractYear"`
	ConsolidatedSummary         string `json:"consolidatedSummary"`
	ConcatenatedProducts        string `json:"concatenatedProducts"`
	CertificationsAndAIMentions string `json:"certificationsAndAiMentions"`
}

// MatchText is the text embedded for similarity search: products first, then
// the consolidated summary, mirroring how catalogue rows are written.
func (a AssetRecord) MatchText() string {
	switch {
	case a.ConcatenatedProducts == "":
		return a.ConsolidatedSummary
	case a.ConsolidatedSummary == "":
		return a.ConcatenatedProducts
	default:
		return a.ConcatenatedProducts + " " + a.ConsolidatedSummary
	}
}

// MatchableRequirement is one flattened requirement ready for embedding.
type MatchableRequirement struct {
	Text     string              `json:"text"`
	Category RequirementCategory `json:"category"`
}
