// Package assets loads the delivered-assets catalogue the compliance map is
// built against.
package assets

import (
	"context"
	"strings"

	"tendermap/pkg/schema"
)

// Source produces the asset catalogue for one analysis request. An empty
// catalogue is a valid result, not an error.
type Source interface {
	Load(ctx context.Context) ([]schema.AssetRecord, error)
}

// StaticSource serves a fixed in-memory catalogue; used in tests and the
// demo command.
type StaticSource struct {
	Records []schema.AssetRecord
}

func (s StaticSource) Load(context.Context) ([]schema.AssetRecord, error) {
	return s.Records, nil
}

// Column headers of the catalogue's fixed column contract. Matching is
// case-insensitive and ignores surrounding whitespace.
const (
	colID             = "id"
	colContractType   = "contracttype"
	colOrganization   = "organizationname"
	colContractYear   = "contractyear"
	colSummary        = "consolidatedsummary"
	colProducts       = "concatenatedproducts"
	colCertifications = "certificationsandaimentions"
)

// RecordsFromRows maps a header row plus data rows into asset records.
// Columns are located by header name, so sheet column order is free. Rows
// with every cell empty are dropped; rows without an ID get a generated one.
func RecordsFromRows(rows [][]string) ([]schema.AssetRecord, error) {
	if len(rows) == 0 {
		return []schema.AssetRecord{}, nil
	}

	index := map[string]int{}
	for i, header := range rows[0] {
		index[canonicalHeader(header)] = i
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]schema.AssetRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := schema.AssetRecord{
			ID:                          cell(row, colID),
			ContractType:                cell(row, colContractType),
			OrganizationName:            cell(row, colOrganization),
			ContractYear:                cell(row, colContractYear),
			ConsolidatedSummary:         cell(row, colSummary),
			ConcatenatedProducts:        cell(row, colProducts),
			CertificationsAndAIMentions: cell(row, colCertifications),
		}
		if rec == (schema.AssetRecord{}) {
			continue
		}
		if rec.ID == "" {
			id, err := schema.NewAssetID()
			if err != nil {
				return nil, err
			}
			rec.ID = id
		}
		records = append(records, rec)
	}
	return records, nil
}

func canonicalHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, "_", "")
	h = strings.ReplaceAll(h, " ", "")
	return h
}
