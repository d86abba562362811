package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRunner struct {
	stdout []byte
	stderr []byte
	err    error

	name string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	return f.stdout, f.stderr, f.err
}

func TestExtractBuildsPdftotextCommand(t *testing.T) {
	r := &fakeRunner{stdout: []byte("page one")}
	e := NewPdftotextExtractor(Config{}, nil)
	e.runner = r

	res, err := e.Extract(context.Background(), "/docs/listing.pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if r.name != "pdftotext" {
		t.Errorf("cmd = %q", r.name)
	}
	want := []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "-l", "3", "/docs/listing.pdf", "-"}
	if strings.Join(r.args, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", r.args, want)
	}
	if res.Text != "page one" || res.Method != "pdf-text" {
		t.Errorf("result = %+v", res)
	}
}

func TestExtractCountsPagesByFormFeed(t *testing.T) {
	tests := []struct {
		text  string
		pages int
	}{
		{"single page", 1},
		{"one\ftwo", 2},
		{"one\ftwo\fthree", 3},
		{"", 1},
	}
	for _, tt := range tests {
		e := NewPdftotextExtractor(Config{}, nil)
		e.runner = &fakeRunner{stdout: []byte(tt.text)}
		res, err := e.Extract(context.Background(), "a.pdf")
		if err != nil {
			t.Fatalf("extract: %v", err)
		}
		if res.Pages != tt.pages {
			t.Errorf("%q: pages = %d, want %d", tt.text, res.Pages, tt.pages)
		}
	}
}

func TestExtractNoPageLimit(t *testing.T) {
	r := &fakeRunner{stdout: []byte("x")}
	e := NewPdftotextExtractor(Config{MaxPages: -1}, nil)
	e.runner = r
	if _, err := e.Extract(context.Background(), "a.pdf"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	for _, a := range r.args {
		if a == "-l" {
			t.Fatalf("page limit flag present with MaxPages<0: %v", r.args)
		}
	}
}

func TestExtractRejectsNonPDF(t *testing.T) {
	e := NewPdftotextExtractor(Config{}, nil)
	e.runner = &fakeRunner{}
	for _, path := range []string{"report.docx", "scan.png", "noext"} {
		if _, err := e.Extract(context.Background(), path); err == nil {
			t.Errorf("%q: expected unsupported-type error", path)
		}
	}
}

func TestExtractCommandFailure(t *testing.T) {
	e := NewPdftotextExtractor(Config{}, nil)
	e.runner = &fakeRunner{stderr: []byte("Syntax Error: broken xref"), err: errors.New("exit status 1")}

	res, err := e.Extract(context.Background(), "broken.pdf")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "broken xref") {
		t.Errorf("stderr should be preserved as a warning, got %v", res.Warnings)
	}
}

func TestPageTexts(t *testing.T) {
	res := TextExtractionResult{Text: "one\ftwo\fthree"}
	pages := res.PageTexts()
	if len(pages) != 3 || pages[0] != "one" || pages[2] != "three" {
		t.Fatalf("pages = %v", pages)
	}
}
