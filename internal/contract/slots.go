package contract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Letter page geometry in points. Slot coordinates are measured from the
// bottom-left corner, matching the PDF coordinate system.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

// Field map slot names. Unknown keys in an incoming field map are ignored;
// slots with no value are stamped as empty strings so placement stays fixed.
const (
	SlotBuyerName       = "buyer_name"
	SlotEmail           = "email"
	SlotPropertyAddress = "property_address"
	SlotPrice           = "price"
	SlotMLS             = "mls"
)

// Slot places one named field on a template page. Coordinates are fragile by
// nature (any template revision silently misaligns them), which is why they
// live in a registry instead of the overlay code.
type Slot struct {
	Name     string  `yaml:"name"`
	Page     int     `yaml:"page"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Font     string  `yaml:"font"`
	FontSize int     `yaml:"size"`
}

// SlotRegistry is the declarative layout for one contract template.
type SlotRegistry struct {
	Template string `yaml:"template"`
	Slots    []Slot `yaml:"slots"`
}

// PurchaseAgreementSlots is the page-1 layout of the standard Purchase
// Agreement template. Small contract-friendly font.
func PurchaseAgreementSlots() SlotRegistry {
	return SlotRegistry{
		Template: "Standard_Purchase_Agreement.pdf",
		Slots: []Slot{
			{Name: SlotBuyerName, Page: 1, X: 90, Y: 735, Font: "Helvetica", FontSize: 9},
			{Name: SlotPropertyAddress, Page: 1, X: 140, Y: 695, Font: "Helvetica", FontSize: 9},
			{Name: SlotPrice, Page: 1, X: 100, Y: 560, Font: "Helvetica", FontSize: 9},
			{Name: SlotMLS, Page: 1, X: 500, Y: 695, Font: "Helvetica", FontSize: 9},
		},
	}
}

// LoadSlotRegistry reads a YAML slot registry from disk. Corrected layouts
// and new templates ship as registry files, not overlay-code changes.
func LoadSlotRegistry(path string) (SlotRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SlotRegistry{}, fmt.Errorf("read slot registry: %w", err)
	}
	var reg SlotRegistry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return SlotRegistry{}, fmt.Errorf("parse slot registry: %w", err)
	}
	if err := reg.validate(); err != nil {
		return SlotRegistry{}, err
	}
	return reg, nil
}

func (r SlotRegistry) validate() error {
	if len(r.Slots) == 0 {
		return fmt.Errorf("slot registry has no slots")
	}
	seen := map[string]struct{}{}
	for _, s := range r.Slots {
		if s.Name == "" {
			return fmt.Errorf("slot registry: slot with empty name")
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("slot registry: duplicate slot %q", s.Name)
		}
		seen[s.Name] = struct{}{}
		if s.Page < 1 {
			return fmt.Errorf("slot %q: page must be >= 1", s.Name)
		}
		if s.X < 0 || s.X > PageWidth || s.Y < 0 || s.Y > PageHeight {
			return fmt.Errorf("slot %q: coordinates (%.0f, %.0f) outside letter page", s.Name, s.X, s.Y)
		}
	}
	return nil
}
