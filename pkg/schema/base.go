package schema

// Sentinel is the fallback value for textual fields the extractor could not find.
const Sentinel = "N/A"

// QualificationCategory identifies one of the fixed eligibility sections of a notice.
type QualificationCategory string

const (
	QualificationLegal     QualificationCategory = "legal"
	QualificationFiscal    QualificationCategory = "fiscal"
	QualificationFinancial QualificationCategory = "financial"
	QualificationTechnical QualificationCategory = "general-technical"
)

// QualificationCategories lists all categories in report-grouping order.
var QualificationCategories = []QualificationCategory{
	QualificationLegal,
	QualificationFiscal,
	QualificationFinancial,
	QualificationTechnical,
}

// AIMention is the extractor's tri-state flag for AI references in an object requirement.
type AIMention string

const (
	AIMentionYes     AIMention = "yes"
	AIMentionNo      AIMention = "no"
	AIMentionUnknown AIMention = "unknown"
)

// RequirementCategory tags a matchable requirement with its provenance.
type RequirementCategory string

const (
	CategoryTechnicalObject      RequirementCategory = "technical-object"
	CategoryGeneralQualification RequirementCategory = "general-qualification"
)

// VerdictStatus is the compliance classification for a single requirement.
type VerdictStatus string

const (
	StatusSatisfied           VerdictStatus = "satisfied"
	StatusSatisfiedIndirectly VerdictStatus = "satisfied-indirectly"
	StatusUnmet               VerdictStatus = "unmet"
)

// Contract types the asset catalogue is known to carry. The set is open: rows
// may hold other values, which simply never trigger the type-compatibility rules.
const (
	ContractTypeContract        = "contract"
	ContractTypeAttestation     = "attestation"
	ContractTypeCertification   = "certification"
	ContractTypeStatementOfWork = "statement-of-work"
)
