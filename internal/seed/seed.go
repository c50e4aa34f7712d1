// Package seed holds the mock data the demo dashboards start from.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pfas-demo/internal/model"
)

//go:embed data.yaml
var embedded []byte

type User struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type ChatRule struct {
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}

type Data struct {
	Users         []User                 `yaml:"users"`
	Documents     []model.Document       `yaml:"documents"`
	Chemicals     []model.ChemicalRecord `yaml:"chemicals"`
	ChatRules     []ChatRule             `yaml:"chat_rules"`
	FallbackReply string                 `yaml:"fallback_reply"`
}

// Load parses the mock data at path, or the embedded copy when path is empty.
func Load(path string) (*Data, error) {
	raw := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file failed: %w", err)
		}
		raw = b
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode seed data failed: %w", err)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (d *Data) validate() error {
	seen := make(map[string]struct{}, len(d.Documents))
	for _, doc := range d.Documents {
		if doc.ID == "" {
			return fmt.Errorf("seed document %q has no id", doc.Name)
		}
		if _, dup := seen[doc.ID]; dup {
			return fmt.Errorf("duplicate seed document id %q", doc.ID)
		}
		seen[doc.ID] = struct{}{}
		if !model.ValidDocumentStatus(doc.Status) {
			return fmt.Errorf("seed document %q has unknown status %q", doc.ID, doc.Status)
		}
	}
	for _, chem := range d.Chemicals {
		if chem.ID == "" {
			return fmt.Errorf("seed chemical %q has no id", chem.ProductName)
		}
		if !model.ValidChemicalStatus(chem.Status) {
			return fmt.Errorf("seed chemical %q has unknown status %q", chem.ID, chem.Status)
		}
		if chem.RiskScore < 0 || chem.RiskScore > 100 {
			return fmt.Errorf("seed chemical %q risk score %d out of range", chem.ID, chem.RiskScore)
		}
	}
	return nil
}
