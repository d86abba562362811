package contract

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRegistry(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slots.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSlotRegistry(t *testing.T) {
	path := writeRegistry(t, `
template: Standard_Purchase_Agreement.pdf
slots:
  - name: buyer_name
    page: 1
    x: 90
    y: 735
    font: Helvetica
    size: 9
  - name: mls
    page: 1
    x: 500
    y: 695
    font: Helvetica
    size: 9
`)
	reg, err := LoadSlotRegistry(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reg.Template != "Standard_Purchase_Agreement.pdf" {
		t.Errorf("template = %q", reg.Template)
	}
	if len(reg.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(reg.Slots))
	}
	if s := reg.Slots[0]; s.Name != SlotBuyerName || s.X != 90 || s.Y != 735 || s.FontSize != 9 {
		t.Errorf("first slot = %+v", s)
	}
}

func TestLoadSlotRegistryValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no slots", "template: t.pdf\nslots: []\n"},
		{"empty name", "slots:\n  - name: \"\"\n    page: 1\n    x: 1\n    y: 1\n"},
		{"duplicate name", "slots:\n  - name: a\n    page: 1\n    x: 1\n    y: 1\n  - name: a\n    page: 1\n    x: 2\n    y: 2\n"},
		{"page zero", "slots:\n  - name: a\n    page: 0\n    x: 1\n    y: 1\n"},
		{"x off page", "slots:\n  - name: a\n    page: 1\n    x: 700\n    y: 1\n"},
		{"y off page", "slots:\n  - name: a\n    page: 1\n    x: 1\n    y: 900\n"},
		{"bad yaml", "slots: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSlotRegistry(writeRegistry(t, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPurchaseAgreementSlotsAreValid(t *testing.T) {
	reg := PurchaseAgreementSlots()
	if err := reg.validate(); err != nil {
		t.Fatalf("built-in layout invalid: %v", err)
	}
	for _, s := range reg.Slots {
		if s.Page != 1 {
			t.Errorf("slot %q on page %d, all built-in slots are page 1", s.Name, s.Page)
		}
	}
}
