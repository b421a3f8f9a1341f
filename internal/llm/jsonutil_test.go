package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON object",
			input: `{"object": "GCP credits"}`,
			want:  `{"object": "GCP credits"}`,
		},
		{
			name:  "json code fence",
			input: "```json\n{\"object\": \"GCP credits\"}\n```",
			want:  `{"object": "GCP credits"}`,
		},
		{
			name:  "bare code fence",
			input: "```\n{\"object\": \"GCP credits\"}\n```",
			want:  `{"object": "GCP credits"}`,
		},
		{
			name:  "prose around the object",
			input: "Here is the extraction:\n{\"object\": \"GCP credits\"}\nLet me know if you need more.",
			want:  `{"object": "GCP credits"}`,
		},
		{
			name:  "trailing commas removed",
			input: `{"details": ["a", "b",], "object": "x",}`,
			want:  `{"details": ["a", "b"], "object": "x"}`,
		},
		{
			name:  "line comment outside string stripped",
			input: "{\n\"object\": \"x\" // extracted from section 2.1\n}",
			want:  "{\n\"object\": \"x\"\n}",
		},
		{
			name:  "slashes inside string survive",
			input: "{\n\"url\": \"http://example.com\"\n}",
			want:  "{\n\"url\": \"http://example.com\"\n}",
		},
		{
			name:  "no JSON at all",
			input: "the model refused to answer",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.input))
		})
	}
}

func TestNormalizeQuotes(t *testing.T) {
	assert.Equal(t, `{"object": "x"}`, NormalizeQuotes(`{'object': 'x'}`))
}

func TestParseStructuredRepairPipeline(t *testing.T) {
	type out struct {
		Object string `json:"object"`
	}

	t.Run("valid JSON needs no repair", func(t *testing.T) {
		result, err := ParseStructured[out](`{"object": "GCP credits"}`)
		require.NoError(t, err)
		assert.Equal(t, "GCP credits", result.Object)
	})

	t.Run("fenced with trailing comma", func(t *testing.T) {
		result, err := ParseStructured[out]("```json\n{\"object\": \"GCP credits\",}\n```")
		require.NoError(t, err)
		assert.Equal(t, "GCP credits", result.Object)
	})

	t.Run("single-quoted falls back to quote normalization", func(t *testing.T) {
		result, err := ParseStructured[out](`{'object': 'GCP credits'}`)
		require.NoError(t, err)
		assert.Equal(t, "GCP credits", result.Object)
	})

	t.Run("unrepairable output surfaces a parse error", func(t *testing.T) {
		_, err := ParseStructured[out](`{"object":`)
		require.Error(t, err)
		var llmErr *LLMError
		require.ErrorAs(t, err, &llmErr)
		assert.Equal(t, ErrorTypeParse, llmErr.Type)
	})

	t.Run("no JSON in response", func(t *testing.T) {
		_, err := ParseStructured[out]("cannot comply")
		require.Error(t, err)
		var llmErr *LLMError
		require.ErrorAs(t, err, &llmErr)
		assert.Equal(t, ErrorTypeParse, llmErr.Type)
	})
}

// Guard against the repair pipeline mangling a realistic full extraction.
func TestParseStructuredRealisticPayload(t *testing.T) {
	payload := "```json\n" + `{
  "object": "Registration of prices for supply of GCP credits", // section 2.1
  "organization": "State Court",
  "judgmentType": "lowest price",
  "estimatedValue": "N/A",
  "dates": {"proposalOpening": "04/06/2024 10:00",},
  "qualificationRequirements": {
    "general-technical": ["Attestation of prior GCP delivery",]
  },
  "objectRequirements": [
    {"description": "Supply of cloud credits", "details": ["36 months",], "aiMention": "no"}
  ]
}` + "\n```"

	type extraction struct {
		Object             string              `json:"object"`
		Dates              map[string]string   `json:"dates"`
		Qualification      map[string][]string `json:"qualificationRequirements"`
		ObjectRequirements []json.RawMessage   `json:"objectRequirements"`
	}

	result, err := ParseStructured[extraction](payload)
	require.NoError(t, err)
	assert.Equal(t, "Registration of prices for supply of GCP credits", result.Object)
	assert.Equal(t, "04/06/2024 10:00", result.Dates["proposalOpening"])
	assert.Len(t, result.ObjectRequirements, 1)
}
