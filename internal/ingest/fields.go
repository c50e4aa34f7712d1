package ingest

import (
	"hash/fnv"
	"path/filepath"
	"strings"

	"pfas-demo/internal/model"
)

// ExtractFunc produces the extracted fields for a finished upload.
type ExtractFunc func(displayName string) model.ExtractedFields

type cannedSubstance struct {
	cas      string
	supplier string
	risk     int
	count    int
}

var cannedSubstances = []cannedSubstance{
	{cas: "335-67-1", supplier: "Apex Coatings Ltd", risk: 92, count: 4},
	{cas: "1763-23-1", supplier: "Northwind Polymers", risk: 88, count: 3},
	{cas: "355-46-4", supplier: "Helix Textiles", risk: 71, count: 2},
	{cas: "13252-13-6", supplier: "Coastal Fluorochem", risk: 64, count: 5},
	{cas: "375-95-1", supplier: "Summit Packaging", risk: 57, count: 1},
}

// CannedExtract picks a stable canned payload for displayName. The same name
// always yields the same substance.
func CannedExtract(displayName string) model.ExtractedFields {
	h := fnv.New32a()
	_, _ = h.Write([]byte(displayName))
	sub := cannedSubstances[int(h.Sum32()%uint32(len(cannedSubstances)))]

	product := strings.TrimSuffix(filepath.Base(displayName), filepath.Ext(displayName))
	product = strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(product))
	if product == "" || product == "." {
		product = "Unnamed product"
	}

	return model.ExtractedFields{
		ProductName:   product,
		CASNumber:     sub.cas,
		Supplier:      sub.supplier,
		YearDetected:  2024,
		RiskScore:     sub.risk,
		ChemicalCount: sub.count,
	}
}
