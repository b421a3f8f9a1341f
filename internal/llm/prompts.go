package llm

import "fmt"

// extractionSchema is the JSON structure the extraction prompt demands. It
// matches the JSON tags of schema.ExtractedRequirements exactly.
const extractionSchema = `{
  "object": "...",
  "organization": "...",
  "judgmentType": "...",
  "estimatedValue": "...",
  "dates": {
    "proposalSubmissionStart": "DD/MM/YYYY",
    "proposalSubmissionEnd": "DD/MM/YYYY HH:MM",
    "proposalOpening": "DD/MM/YYYY HH:MM",
    "priceDispute": "DD/MM/YYYY HH:MM"
  },
  "qualificationRequirements": {
    "legal": ["..."],
    "fiscal": ["..."],
    "financial": ["..."],
    "general-technical": ["..."]
  },
  "objectRequirements": [
    {
      "description": "...",
      "details": ["...", "..."],
      "minimumQuantity": "...",
      "requiredCertification": "...",
      "specificDeadlines": "...",
      "aiMention": "yes|no|unknown"
    }
  ],
  "specializedConditions": {
    "proofOfConcept": "yes/no",
    "guarantees": "...",
    "eliminationCriteria": "...",
    "subcontractingAllowed": "yes/no"
  },
  "generalInfo": {
    "proposalValidity": "...",
    "documentDeliveryLocation": "...",
    "contactForQuestions": "..."
  }
}`

// BuildExtractionPrompt creates the fixed prompt contract for structured
// requirement extraction from a procurement notice.
func BuildExtractionPrompt(noticeText string) string {
	return fmt.Sprintf(`Given the following procurement notice text, extract the information below as JSON.
If a piece of information is not found, use "N/A".
Extract dates and monetary values in the most standardized form available.
Clearly separate the eligibility requirements (legal, fiscal, financial, general technical qualification) from the object-specific technical requirements of the service or product being procured.
For each object requirement, set "aiMention" to "yes" only when the requirement explicitly references artificial intelligence, "no" when it clearly does not, and "unknown" otherwise.

Expected JSON structure:
%s

Return ONLY valid JSON. No commentary, no markdown.

Notice text:
%s`, extractionSchema, noticeText)
}
