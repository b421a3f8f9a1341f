package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"tendermap/internal/assets"
	"tendermap/internal/embedding"
	"tendermap/internal/extract"
	"tendermap/internal/llm"
	"tendermap/internal/match"
	"tendermap/pkg/schema"
)

// demoCatalogue is a tiny built-in delivered-assets catalogue, enough to see
// the cross-reference produce all three verdict kinds.
var demoCatalogue = []schema.AssetRecord{
	{
		ID:                   "AST-demo-1",
		ContractType:         "contract",
		OrganizationName:     "TJES",
		ContractYear:         "2023",
		ConsolidatedSummary:  "Supply of Google Cloud Platform credits and managed services",
		ConcatenatedProducts: "GCP subscription, cloud storage, SOW for migration",
	},
	{
		ID:                          "AST-demo-2",
		ContractType:                "attestation",
		OrganizationName:            "SEFAZ-GO",
		ContractYear:                "2022",
		ConsolidatedSummary:         "Technical attestation for Google Workspace deployment",
		ConcatenatedProducts:        "google workspace licenses, migration services",
		CertificationsAndAIMentions: "Google Workspace deployment specialist",
	},
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println("usage: extract-demo <notice-text-file>")
		os.Exit(1)
	}

	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		fmt.Println("❌ LLM_API_KEY not set")
		fmt.Println("   Set it with: export LLM_API_KEY=sk-or-v1-...")
		os.Exit(1)
	}

	noticeText, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("❌ Cannot read notice file: %v\n", err)
		os.Exit(1)
	}

	client, err := llm.NewClient(&llm.Config{
		APIKey:       apiKey,
		BaseURL:      "https://openrouter.ai/api/v1",
		DefaultModel: "google/gemini-2.5-flash",
	})
	if err != nil {
		fmt.Printf("❌ Failed to create LLM client: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	fmt.Println("🤖 tendermap extraction demo")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Println("📄 Extracting requirements from notice...")
	extracted, err := extract.NewExtractor(client).Extract(ctx, string(noticeText))
	if err != nil {
		fmt.Printf("❌ Extraction failed: %v\n", err)
		os.Exit(1)
	}
	if extracted.ExtractionError != "" {
		fmt.Printf("⚠️  Extraction degraded: %s\n", extracted.ExtractionError)
	}

	fmt.Printf("   ✅ Organization: %s\n", extracted.Organization)
	fmt.Printf("   ✅ Object: %s\n", extracted.Object)
	fmt.Printf("   ✅ Object requirements: %d\n", len(extracted.ObjectRequirements))
	for cat, reqs := range extracted.QualificationRequirements {
		fmt.Printf("   ✅ Qualification (%s): %d\n", cat, len(reqs))
	}
	fmt.Println()

	embeddingKey := os.Getenv("EMBEDDING_API_KEY")
	if embeddingKey == "" {
		fmt.Println("ℹ️  EMBEDDING_API_KEY not set; skipping cross-reference")
		return
	}

	fmt.Println("🔍 Cross-referencing against the demo catalogue...")
	gateway, err := embedding.NewOpenAIClient(embedding.OpenAIConfig{APIKey: embeddingKey})
	if err != nil {
		fmt.Printf("❌ Embedding client: %v\n", err)
		os.Exit(1)
	}

	catalogue, err := assets.StaticSource{Records: demoCatalogue}.Load(ctx)
	if err != nil {
		fmt.Printf("❌ Catalogue: %v\n", err)
		os.Exit(1)
	}

	report, err := match.NewEngine(gateway).CrossReference(ctx, extracted, catalogue)
	if err != nil {
		fmt.Printf("❌ Cross-reference failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("   ✅ Compliance map: %d rows\n", len(report.Rows))
	for _, row := range report.Rows {
		fmt.Printf("   → [%s] %s\n", row.Status, row.RequirementText)
		fmt.Printf("     evidence: %s | action: %s\n", row.Evidence, row.ActionNeeded)
	}
	fmt.Println()
	fmt.Println("✨ Done")
}
