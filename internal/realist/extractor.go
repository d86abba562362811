package realist

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/mira-realty/transaction-copilot/internal/extract"
)

// fieldRule binds one record field to its line predicate. Rules are evaluated
// independently per line, in order; a single line may satisfy several rules,
// and a later matching line overwrites an earlier one for the same field.
// Last match wins is long-standing behavior that dashboards and regression
// tests pin; don't flip to first-match without telling the agents.
type fieldRule struct {
	name  string
	slot  func(r *PropertyRecord) *string
	match func(lower, raw string) bool
}

var rules = []fieldRule{
	{
		name: "property_address",
		slot: func(r *PropertyRecord) *string { return &r.Address },
		match: func(lower, raw string) bool {
			return strings.Contains(lower, "address") && containsDigit(raw)
		},
	},
	{
		name: "listing_price",
		slot: func(r *PropertyRecord) *string { return &r.ListingPrice },
		match: func(lower, raw string) bool {
			return strings.Contains(raw, "$") && (strings.Contains(lower, "price") || strings.Contains(lower, "list"))
		},
	},
	{
		name: "mls_number",
		slot: func(r *PropertyRecord) *string { return &r.MLSNumber },
		match: func(lower, raw string) bool {
			return strings.Contains(lower, "mls") && containsDigit(raw)
		},
	},
	{
		name: "square_footage",
		slot: func(r *PropertyRecord) *string { return &r.SquareFootage },
		match: func(lower, raw string) bool {
			return strings.Contains(lower, "sq") && strings.Contains(lower, "ft")
		},
	},
	{
		name:  "lot_size",
		slot:  func(r *PropertyRecord) *string { return &r.LotSize },
		match: containsWord("lot size"),
	},
	{
		name:  "year_built",
		slot:  func(r *PropertyRecord) *string { return &r.YearBuilt },
		match: containsWord("year built"),
	},
	{
		name:  "bedrooms",
		slot:  func(r *PropertyRecord) *string { return &r.Bedrooms },
		match: containsWord("bed"),
	},
	{
		name:  "bathrooms",
		slot:  func(r *PropertyRecord) *string { return &r.Bathrooms },
		match: containsWord("bath"),
	},
	{
		name:  "property_type",
		slot:  func(r *PropertyRecord) *string { return &r.PropertyType },
		match: containsWord("type"),
	},
	{
		name: "tax_id",
		slot: func(r *PropertyRecord) *string { return &r.TaxID },
		match: func(lower, raw string) bool {
			return strings.Contains(lower, "tax id") || strings.Contains(lower, "parcel")
		},
	},
	{
		name:  "legal_description",
		slot:  func(r *PropertyRecord) *string { return &r.LegalDescription },
		match: containsWord("legal"),
	},
	{
		name:  "subdivision",
		slot:  func(r *PropertyRecord) *string { return &r.Subdivision },
		match: containsWord("subdivision"),
	},
	{
		name:  "zoning",
		slot:  func(r *PropertyRecord) *string { return &r.Zoning },
		match: containsWord("zoning"),
	},
	{
		name: "assessed_value",
		slot: func(r *PropertyRecord) *string { return &r.AssessedValue },
		match: func(lower, raw string) bool {
			return strings.Contains(lower, "assessed") || strings.Contains(lower, "assessment")
		},
	},
	{
		name:  "owner_of_record",
		slot:  func(r *PropertyRecord) *string { return &r.OwnerOfRecord },
		match: containsWord("owner"),
	},
}

func containsWord(word string) func(lower, raw string) bool {
	return func(lower, raw string) bool {
		return strings.Contains(lower, word)
	}
}

func containsDigit(s string) bool {
	for _, c := range s {
		if unicode.IsDigit(c) {
			return true
		}
	}
	return false
}

// ExtractLines runs the rule list over raw lines and returns the populated
// record. The stored value is the raw trimmed line, never the lowercased probe.
// Never fails: unmatched input just leaves fields empty.
func ExtractLines(lines []string) *PropertyRecord {
	rec := &PropertyRecord{}
	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		trimmed := strings.TrimSpace(line)
		for _, rule := range rules {
			if rule.match(lower, line) {
				*rule.slot(rec) = trimmed
			}
		}
	}
	return rec
}

// Parse splits extracted document text into lines and runs ExtractLines.
func Parse(text string) *PropertyRecord {
	return ExtractLines(strings.Split(text, "\n"))
}

// Extractor turns a listing document into a PropertyRecord using a
// text-extraction collaborator. Extraction is best-effort by contract:
// an unreadable document yields an all-empty record, not an error, because
// drafting proceeds with partial data and an agent reviews the result.
type Extractor struct {
	text   extract.TextExtractor
	logger *slog.Logger
}

func NewExtractor(text extract.TextExtractor, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{text: text, logger: logger}
}

// ExtractFile extracts property data from the document at path.
// The bool result reports whether document text was actually readable.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*PropertyRecord, bool) {
	res, err := e.text.Extract(ctx, path)
	if err != nil {
		e.logger.Warn("realist extraction degraded to empty record", "path", path, "error", err)
		return &PropertyRecord{}, false
	}
	rec := Parse(res.Text)
	e.logger.Info("realist extraction ok",
		"path", path,
		"pages", res.Pages,
		"method", res.Method,
		"empty", rec.IsEmpty(),
	)
	return rec, true
}
