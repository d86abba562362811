package contract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mira-realty/transaction-copilot/constants"
	"github.com/mira-realty/transaction-copilot/internal/entity"
	"github.com/mira-realty/transaction-copilot/internal/realist"
)

type fakeFallback struct {
	called bool
	lead   *entity.Lead
	out    string
	err    error
}

func (f *fakeFallback) Generate(lead *entity.Lead, outPath string) error {
	f.called = true
	f.lead = lead
	f.out = outPath
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, []byte("docx"), 0o644)
}

func testLead() *entity.Lead {
	return &entity.Lead{
		ID:      uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Name:    "Alice Johnson",
		Email:   "alice@example.com",
		Service: "Buyer Representation",
		Status:  constants.StatusRealistAdded,
	}
}

func TestBuildFieldMap(t *testing.T) {
	lead := testLead()
	rec := &realist.PropertyRecord{
		Address:      "Address: 123 Main St",
		ListingPrice: "List Price: $450,000",
		MLSNumber:    "MLS# 99881234",
	}
	fields := BuildFieldMap(lead, rec)
	want := FieldMap{
		SlotBuyerName:       "Alice Johnson",
		SlotEmail:           "alice@example.com",
		SlotPropertyAddress: "Address: 123 Main St",
		SlotPrice:           "List Price: $450,000",
		SlotMLS:             "MLS# 99881234",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("%s = %q, want %q", k, fields[k], v)
		}
	}
}

func TestBuildFieldMapNilRecord(t *testing.T) {
	fields := BuildFieldMap(testLead(), nil)
	if fields[SlotBuyerName] != "Alice Johnson" {
		t.Errorf("buyer_name = %q", fields[SlotBuyerName])
	}
	if fields[SlotPropertyAddress] != "" {
		t.Errorf("property_address should be blank, got %q", fields[SlotPropertyAddress])
	}
}

func TestAssembleWithTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := "Standard_Purchase_Agreement.pdf"
	if err := os.WriteFile(filepath.Join(dir, tmpl), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	st := &fakeStamper{pages: 6}
	engine := NewOverlayEngine(PurchaseAgreementSlots(), st, nil)
	fb := &fakeFallback{}
	a := NewAssembler(dir, tmpl, filepath.Join(dir, "out"), engine, fb, nil)

	res, err := a.Assemble(testLead(), &realist.PropertyRecord{MLSNumber: "MLS# 7"})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if res.Fallback {
		t.Error("template exists, fallback should not be used")
	}
	if fb.called {
		t.Error("fallback generator must not run when the template is present")
	}
	if want := filepath.Join(dir, "out", "PA_filled_11111111-2222-3333-4444-555555555555.pdf"); res.Path != want {
		t.Errorf("path = %q, want %q", res.Path, want)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Errorf("filled contract missing: %v", err)
	}
}

func TestAssembleFallsBackWithoutTemplate(t *testing.T) {
	dir := t.TempDir()
	engine := NewOverlayEngine(PurchaseAgreementSlots(), &fakeStamper{pages: 6}, nil)
	fb := &fakeFallback{}
	a := NewAssembler(dir, "missing.pdf", filepath.Join(dir, "out"), engine, fb, nil)

	res, err := a.Assemble(testLead(), nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !res.Fallback {
		t.Error("expected the fallback path to be taken")
	}
	if !fb.called {
		t.Fatal("fallback generator was not invoked")
	}
	if !strings.HasSuffix(res.Path, "demo_contract_11111111-2222-3333-4444-555555555555.docx") {
		t.Errorf("fallback path = %q", res.Path)
	}
}

func TestAssembleSurfacesOverlayError(t *testing.T) {
	dir := t.TempDir()
	tmpl := "Standard_Purchase_Agreement.pdf"
	if err := os.WriteFile(filepath.Join(dir, tmpl), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	engine := NewOverlayEngine(PurchaseAgreementSlots(), &fakeStamper{pages: 1, stampErr: errors.New("boom")}, nil)
	fb := &fakeFallback{}
	a := NewAssembler(dir, tmpl, filepath.Join(dir, "out"), engine, fb, nil)

	if _, err := a.Assemble(testLead(), nil); err == nil {
		t.Fatal("expected overlay error to surface")
	}
	// A present-but-broken template is an error, never a silent fallback.
	if fb.called {
		t.Error("fallback must not mask overlay failures")
	}
}

func TestAssembleSurfacesFallbackError(t *testing.T) {
	dir := t.TempDir()
	engine := NewOverlayEngine(PurchaseAgreementSlots(), &fakeStamper{pages: 6}, nil)
	fb := &fakeFallback{err: errors.New("disk full")}
	a := NewAssembler(dir, "missing.pdf", filepath.Join(dir, "out"), engine, fb, nil)

	if _, err := a.Assemble(testLead(), nil); err == nil {
		t.Fatal("expected fallback error to surface")
	}
}
