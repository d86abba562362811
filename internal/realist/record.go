package realist

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PropertyRecord is the structured result of scanning a Realist listing export.
// Every field is independently optional; "" means the line was never seen.
// Persisted as a flat JSON object on the lead row.
type PropertyRecord struct {
	Address          string `json:"property_address"`
	ListingPrice     string `json:"listing_price"`
	MLSNumber        string `json:"mls_number"`
	SquareFootage    string `json:"square_footage"`
	LotSize          string `json:"lot_size"`
	YearBuilt        string `json:"year_built"`
	Bedrooms         string `json:"bedrooms"`
	Bathrooms        string `json:"bathrooms"`
	PropertyType     string `json:"property_type"`
	TaxID            string `json:"tax_id"`
	LegalDescription string `json:"legal_description"`
	Subdivision      string `json:"subdivision"`
	Zoning           string `json:"zoning"`
	AssessedValue    string `json:"assessed_value"`
	OwnerOfRecord    string `json:"owner_of_record"`
	ListingAgent     string `json:"listing_agent"`
	ListingOffice    string `json:"listing_office"`
}

// IsEmpty reports whether no field was populated.
func (r *PropertyRecord) IsEmpty() bool {
	return *r == PropertyRecord{}
}

// recordSchema pins the storage-boundary shape: a flat object of string fields.
// Legacy rows may carry extra keys; those are tolerated and dropped on decode.
const recordSchema = `{
	"type": "object",
	"properties": {
		"property_address":  {"type": "string"},
		"listing_price":     {"type": "string"},
		"mls_number":        {"type": "string"},
		"square_footage":    {"type": "string"},
		"lot_size":          {"type": "string"},
		"year_built":        {"type": "string"},
		"bedrooms":          {"type": "string"},
		"bathrooms":         {"type": "string"},
		"property_type":     {"type": "string"},
		"tax_id":            {"type": "string"},
		"legal_description": {"type": "string"},
		"subdivision":       {"type": "string"},
		"zoning":            {"type": "string"},
		"assessed_value":    {"type": "string"},
		"owner_of_record":   {"type": "string"},
		"listing_agent":     {"type": "string"},
		"listing_office":    {"type": "string"}
	}
}`

var compiledRecordSchema = mustCompileRecordSchema()

func mustCompileRecordSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("property_record.json", bytes.NewReader([]byte(recordSchema))); err != nil {
		panic(err)
	}
	return c.MustCompile("property_record.json")
}

// EncodeRecord serializes a record for storage.
func EncodeRecord(r *PropertyRecord) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRecord validates and deserializes a stored record blob.
// A nil/empty blob decodes to an all-empty record.
func DecodeRecord(data []byte) (*PropertyRecord, error) {
	if len(data) == 0 {
		return &PropertyRecord{}, nil
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode property record: %w", err)
	}
	if err := compiledRecordSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("property record schema: %w", err)
	}
	var r PropertyRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode property record: %w", err)
	}
	return &r, nil
}
