package schema

import "fmt"

// ObjectRequirement is one technical item of the notice's object or specific
// technical qualification section.
type ObjectRequirement struct {
	Description           string    `json:"description"`
	Details               []string  `json:"details"`
	MinimumQuantity       string    `json:"minimumQuantity"`
	RequiredCertification string    `json:"requiredCertification"`
	SpecificDeadlines     string    `json:"specificDeadlines"`
	AIMention             AIMention `json:"aiMention"`
}

// ExtractedRequirements is the structured record the LLM produces for one
// procurement notice. Every textual field carries the Sentinel when the
// extractor found nothing; the matching core never sees a missing field.
type ExtractedRequirements struct {
	Object         string `json:"object"`
	Organization   string `json:"organization"`
	JudgmentType   string `json:"judgmentType"`
	EstimatedValue string `json:"estimatedValue"`

	Dates map[string]string `json:"dates"`

	QualificationRequirements map[QualificationCategory][]string `json:"qualificationRequirements"`
	ObjectRequirements        []ObjectRequirement                `json:"objectRequirements"`

	SpecializedConditions map[string]string `json:"specializedConditions"`
	GeneralInfo           map[string]string `json:"generalInfo"`

	// Degraded-result markers, set when the LLM output could not be parsed
	// even after repair. A record with ExtractionError set carries no
	// requirements and downstream produces an empty compliance map.
	ExtractionError string `json:"extractionError,omitempty"`
	RawOutput       string `json:"rawOutput,omitempty"`
}

// ApplyDefaults fills absent scalar fields with the Sentinel and nil maps
// with empty ones, so consumers never branch on missing data.
func (e *ExtractedRequirements) ApplyDefaults() {
	if e.Object == "" {
		e.Object = Sentinel
	}
	if e.Organization == "" {
		e.Organization = Sentinel
	}
	if e.JudgmentType == "" {
		e.JudgmentType = Sentinel
	}
	if e.EstimatedValue == "" {
		e.EstimatedValue = Sentinel
	}
	if e.Dates == nil {
		e.Dates = map[string]string{}
	}
	if e.QualificationRequirements == nil {
		e.QualificationRequirements = map[QualificationCategory][]string{}
	}
	if e.SpecializedConditions == nil {
		e.SpecializedConditions = map[string]string{}
	}
	if e.GeneralInfo == nil {
		e.GeneralInfo = map[string]string{}
	}
	for i := range e.ObjectRequirements {
		if e.ObjectRequirements[i].AIMention == "" {
			e.ObjectRequirements[i].AIMention = AIMentionUnknown
		}
	}
}

// Validate performs the minimal shape check on a freshly-decoded record: the
// sections consumed by the matching core must decode to sane values. It does
// not judge content; an empty notice is a valid notice.
func (e *ExtractedRequirements) Validate() error {
	for cat := range e.QualificationRequirements {
		switch cat {
		case QualificationLegal, QualificationFiscal, QualificationFinancial, QualificationTechnical:
		default:
			return fmt.Errorf("unknown qualification category %q", cat)
		}
	}
	for i, req := range e.ObjectRequirements {
		switch req.AIMention {
		case AIMentionYes, AIMentionNo, AIMentionUnknown, "":
		default:
			return fmt.Errorf("objectRequirements[%d]: invalid aiMention %q", i, req.AIMention)
		}
	}
	return nil
}

// Empty reports whether the record carries no matchable content at all.
func (e *ExtractedRequirements) Empty() bool {
	if len(e.ObjectRequirements) > 0 {
		return false
	}
	for _, reqs := range e.QualificationRequirements {
		if len(reqs) > 0 {
			return false
		}
	}
	return true
}
