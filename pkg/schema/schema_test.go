package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	e := &ExtractedRequirements{
		ObjectRequirements: []ObjectRequirement{{Description: "GCP credits"}},
	}
	e.ApplyDefaults()

	assert.Equal(t, Sentinel, e.Object)
	assert.Equal(t, Sentinel, e.Organization)
	assert.Equal(t, Sentinel, e.JudgmentType)
	assert.Equal(t, Sentinel, e.EstimatedValue)
	assert.NotNil(t, e.Dates)
	assert.NotNil(t, e.QualificationRequirements)
	assert.NotNil(t, e.SpecializedConditions)
	assert.NotNil(t, e.GeneralInfo)
	assert.Equal(t, AIMentionUnknown, e.ObjectRequirements[0].AIMention)
}

func TestApplyDefaultsKeepsExistingValues(t *testing.T) {
	e := &ExtractedRequirements{Object: "cloud credits", Organization: "MPPE"}
	e.ApplyDefaults()

	assert.Equal(t, "cloud credits", e.Object)
	assert.Equal(t, "MPPE", e.Organization)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  ExtractedRequirements
		wantErr string
	}{
		{
			name:   "empty record is valid",
			record: ExtractedRequirements{},
		},
		{
			name: "known categories and mentions",
			record: ExtractedRequirements{
				QualificationRequirements: map[QualificationCategory][]string{
					QualificationLegal:     {"commercial registration"},
					QualificationTechnical: {"attestation of prior GCP delivery"},
				},
				ObjectRequirements: []ObjectRequirement{{Description: "chatbot", AIMention: AIMentionYes}},
			},
		},
		{
			name: "unknown qualification category",
			record: ExtractedRequirements{
				QualificationRequirements: map[QualificationCategory][]string{
					"environmental": {"ISO 14001"},
				},
			},
			wantErr: "unknown qualification category",
		},
		{
			name: "invalid ai mention",
			record: ExtractedRequirements{
				ObjectRequirements: []ObjectRequirement{{Description: "chatbot", AIMention: "maybe"}},
			},
			wantErr: "invalid aiMention",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	var e ExtractedRequirements
	assert.True(t, e.Empty())

	e.QualificationRequirements = map[QualificationCategory][]string{
		QualificationFiscal: {},
	}
	assert.True(t, e.Empty(), "category with no entries is still empty")

	e.QualificationRequirements[QualificationTechnical] = []string{"attestation required"}
	assert.False(t, e.Empty())
}

func TestAssetMatchText(t *testing.T) {
	a := AssetRecord{ConcatenatedProducts: "BigQuery, GKE", ConsolidatedSummary: "GCP credit supply"}
	assert.Equal(t, "BigQuery, GKE GCP credit supply", a.MatchText())

	assert.Equal(t, "only summary", AssetRecord{ConsolidatedSummary: "only summary"}.MatchText())
	assert.Equal(t, "only products", AssetRecord{ConcatenatedProducts: "only products"}.MatchText())
	assert.Equal(t, "", AssetRecord{}.MatchText())
}

func TestEmptyReportKeepsColumnSchema(t *testing.T) {
	report := NewComplianceReport(nil)

	assert.Equal(t, ReportColumns, report.Columns)
	require.NotNil(t, report.Rows)
	assert.Len(t, report.Rows, 0)

	data, err := report.MarshalRows()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestReportRowsRoundTrip(t *testing.T) {
	verdicts := []ComplianceVerdict{
		{
			RequirementText: "supply of GCP credits",
			Category:        CategoryTechnicalObject,
			Status:          StatusSatisfied,
			Evidence:        "contract - TJES - 2023",
			ActionNeeded:    "none",
		},
		{
			RequirementText: "AI capability attestation",
			Category:        CategoryGeneralQualification,
			Status:          StatusUnmet,
			Evidence:        "—",
			ActionNeeded:    "seek AI-specific evidence or develop capability",
		},
	}

	data, err := NewComplianceReport(verdicts).MarshalRows()
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, len(verdicts))
	for _, row := range rows {
		for _, col := range ReportColumns {
			_, ok := row[col]
			assert.True(t, ok, "column %s missing", col)
		}
	}
}

func TestIDFormats(t *testing.T) {
	an, err := NewAnalysisID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(an, "AN-"))
	assert.Len(t, an, len("AN-")+10)

	ast, err := NewAssetID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ast, "AST-"))
}
