package contract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mira-realty/transaction-copilot/internal/common"
)

type fakeStamper struct {
	pages    int
	pagesErr error
	stampErr error
	stamped  []Stamp
	path     string
}

func (f *fakeStamper) PageCount(string) (int, error) {
	return f.pages, f.pagesErr
}

func (f *fakeStamper) StampText(path string, stamps []Stamp) error {
	f.path = path
	f.stamped = stamps
	return f.stampErr
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 template body"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOverlayStampsEverySlot(t *testing.T) {
	st := &fakeStamper{pages: 6}
	e := NewOverlayEngine(PurchaseAgreementSlots(), st, nil)
	tmpl := writeTemplate(t)
	out := filepath.Join(t.TempDir(), "filled.pdf")

	err := e.Overlay(tmpl, out, FieldMap{
		SlotBuyerName: "Alice Johnson",
		SlotMLS:       "MLS# 99881234",
	})
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}

	if st.path != out {
		t.Errorf("stamped %q, want the output copy %q", st.path, out)
	}
	// Every registered slot gets a stamp, even with no value.
	if len(st.stamped) != len(PurchaseAgreementSlots().Slots) {
		t.Fatalf("stamped %d slots, want %d", len(st.stamped), len(PurchaseAgreementSlots().Slots))
	}
	byName := map[string]Stamp{}
	for i, s := range PurchaseAgreementSlots().Slots {
		byName[s.Name] = st.stamped[i]
	}
	if s := byName[SlotBuyerName]; s.Text != "Alice Johnson" || s.X != 90 || s.Y != 735 || s.Page != 1 {
		t.Errorf("buyer_name stamp = %+v", s)
	}
	if s := byName[SlotPropertyAddress]; s.Text != "" {
		t.Errorf("unset slot should stamp empty text, got %q", s.Text)
	}

	// The template itself is copied to the output before stamping.
	body, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(body) != "%PDF-1.4 template body" {
		t.Errorf("output is not a copy of the template: %q", body)
	}
}

func TestOverlaySlotBeyondTemplatePages(t *testing.T) {
	reg := SlotRegistry{Slots: []Slot{{Name: "sig", Page: 3, X: 10, Y: 10}}}
	e := NewOverlayEngine(reg, &fakeStamper{pages: 1}, nil)
	out := filepath.Join(t.TempDir(), "filled.pdf")

	err := e.Overlay(writeTemplate(t), out, nil)
	if err == nil {
		t.Fatal("expected error for slot past the last page")
	}
	if !errors.Is(err, common.ErrDocumentGen) {
		t.Errorf("error should wrap ErrDocumentGen, got %v", err)
	}
	if _, serr := os.Stat(out); !os.IsNotExist(serr) {
		t.Error("no output should exist when validation fails")
	}
}

func TestOverlayUnreadableTemplate(t *testing.T) {
	e := NewOverlayEngine(PurchaseAgreementSlots(), &fakeStamper{pagesErr: errors.New("not a pdf")}, nil)
	if err := e.Overlay(writeTemplate(t), filepath.Join(t.TempDir(), "x.pdf"), nil); err == nil {
		t.Fatal("expected error when the template cannot be read")
	}
}

func TestOverlayRemovesOutputOnStampFailure(t *testing.T) {
	e := NewOverlayEngine(PurchaseAgreementSlots(), &fakeStamper{pages: 1, stampErr: errors.New("boom")}, nil)
	out := filepath.Join(t.TempDir(), "filled.pdf")

	if err := e.Overlay(writeTemplate(t), out, nil); err == nil {
		t.Fatal("expected stamp error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("half-written output should have been removed")
	}
}
