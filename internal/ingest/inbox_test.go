package ingest

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseInboxFilename(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	tests := []struct {
		name string
		path string
		want uuid.UUID
		ok   bool
	}{
		{
			"plain routing key",
			"11111111-2222-3333-4444-555555555555__realist.pdf",
			id, true,
		},
		{
			"full path",
			"/inbox/11111111-2222-3333-4444-555555555555__anything at all.pdf",
			id, true,
		},
		{
			"double separator keeps head",
			"11111111-2222-3333-4444-555555555555__a__b.pdf",
			id, true,
		},
		{"no separator", "realist.pdf", uuid.Nil, false},
		{"non-uuid head", "lead-42__realist.pdf", uuid.Nil, false},
		{"empty head", "__realist.pdf", uuid.Nil, false},
		{"bare name", "notes", uuid.Nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInboxFilename(tt.path)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("id = %s, want %s", got, tt.want)
			}
		})
	}
}
