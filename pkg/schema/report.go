package schema

import "encoding/json"

// ComplianceVerdict is the classifier's decision for one requirement. Created
// once per requirement per request and never mutated afterwards.
type ComplianceVerdict struct {
	RequirementText string              `json:"Requirement"`
	Category        RequirementCategory `json:"Category"`
	Status          VerdictStatus       `json:"Status"`
	Evidence        string              `json:"Evidence"`
	ActionNeeded    string              `json:"ActionNeeded"`
}

// ReportColumns is the fixed column schema of a compliance report.
var ReportColumns = []string{"Requirement", "Category", "Status", "Evidence", "ActionNeeded"}

// ComplianceReport is the final tabular result: one row per requirement in
// collection order. An empty report still carries the full column schema.
type ComplianceReport struct {
	Columns []string            `json:"columns"`
	Rows    []ComplianceVerdict `json:"rows"`
}

// NewComplianceReport assembles the report from verdicts, preserving order.
// A nil or empty verdict list yields an empty report with intact columns.
func NewComplianceReport(verdicts []ComplianceVerdict) ComplianceReport {
	rows := verdicts
	if rows == nil {
		rows = []ComplianceVerdict{}
	}
	return ComplianceReport{Columns: ReportColumns, Rows: rows}
}

// MarshalRows serializes the report row-oriented, the shape API consumers get:
// [{Requirement, Category, Status, Evidence, ActionNeeded}, ...].
func (r ComplianceReport) MarshalRows() ([]byte, error) {
	return json.Marshal(r.Rows)
}
