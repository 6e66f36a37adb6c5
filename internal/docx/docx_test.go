package docx_test

// Notes:
// - Documents are verified by reopening the zip and decoding word/document.xml
//   with encoding/xml, the way a consumer would read them.
// - Rendering fidelity in Word/LibreOffice is not tested here.

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2doc/internal/docx"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type xmlDocument struct {
	Paragraphs []xmlParagraph `xml:"body>p"`
}

type xmlParagraph struct {
	Style struct {
		Val string `xml:"val,attr"`
	} `xml:"pPr>pStyle"`
	Jc struct {
		Val string `xml:"val,attr"`
	} `xml:"pPr>jc"`
	Text []string `xml:"r>t"`
}

func readParts(t *testing.T, data []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		parts[f.Name] = string(content)
	}
	return parts
}

func decodeDocument(t *testing.T, parts map[string]string) xmlDocument {
	t.Helper()

	var doc xmlDocument
	if err := xml.Unmarshal([]byte(parts["word/document.xml"]), &doc); err != nil {
		t.Fatalf("word/document.xml does not parse: %v", err)
	}
	return doc
}

func render(t *testing.T, d *docx.Document) []byte {
	t.Helper()

	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() unexpected error: %v", err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// TestNew - Option validation
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    docx.Options
		wantErr error
	}{
		{"zero options use defaults", docx.Options{}, nil},
		{"explicit options", docx.Options{Font: "Tahoma", FontSize: 11, Alignment: "left"}, nil},
		{"negative size", docx.Options{FontSize: -1}, docx.ErrFontSize},
		{"unknown alignment", docx.Options{Alignment: "middle"}, docx.ErrAlignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := docx.New(tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDocument_WriteTo - Package content
// ---------------------------------------------------------------------------

func TestDocument_WriteTo_Parts(t *testing.T) {
	t.Parallel()

	d, err := docx.New(docx.Options{})
	if err != nil {
		t.Fatal(err)
	}
	parts := readParts(t, render(t, d))

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/numbering.xml",
		"word/document.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("package missing part %s", name)
		}
		if name != "_rels/.rels" && name != "word/_rels/document.xml.rels" {
			if err := xml.Unmarshal([]byte(parts[name]), new(struct{})); err != nil {
				t.Errorf("part %s is not well-formed XML: %v", name, err)
			}
		}
	}
}

func TestDocument_WriteTo_Empty(t *testing.T) {
	t.Parallel()

	d, err := docx.New(docx.Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc := decodeDocument(t, readParts(t, render(t, d)))
	if len(doc.Paragraphs) != 0 {
		t.Errorf("empty document has %d paragraphs, want 0", len(doc.Paragraphs))
	}
}

func TestDocument_WriteTo_Paragraphs(t *testing.T) {
	t.Parallel()

	d, err := docx.New(docx.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for level := 1; level <= 3; level++ {
		if err := d.AddHeading(level, "عنوان"); err != nil {
			t.Fatalf("AddHeading(%d) unexpected error: %v", level, err)
		}
	}
	d.AddBullet("عنصر")
	d.AddNumbered("خطوة")
	d.AddParagraph(`a < b & "c"`)

	if d.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", d.Len())
	}

	doc := decodeDocument(t, readParts(t, render(t, d)))

	want := []struct {
		style string
		text  string
	}{
		{"Heading1", "عنوان"},
		{"Heading2", "عنوان"},
		{"Heading3", "عنوان"},
		{"ListBullet", "عنصر"},
		{"ListNumber", "خطوة"},
		{"", `a < b & "c"`},
	}
	if len(doc.Paragraphs) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(doc.Paragraphs), len(want))
	}
	for i, w := range want {
		p := doc.Paragraphs[i]
		if p.Style.Val != w.style {
			t.Errorf("paragraph %d style = %q, want %q", i, p.Style.Val, w.style)
		}
		if got := strings.Join(p.Text, ""); got != w.text {
			t.Errorf("paragraph %d text = %q, want %q", i, got, w.text)
		}
		if p.Jc.Val != "right" {
			t.Errorf("paragraph %d alignment = %q, want right", i, p.Jc.Val)
		}
	}
}

func TestDocument_WriteTo_Font(t *testing.T) {
	t.Parallel()

	d, err := docx.New(docx.Options{Font: "Arial", FontSize: 12})
	if err != nil {
		t.Fatal(err)
	}
	styles := readParts(t, render(t, d))["word/styles.xml"]

	for _, want := range []string{`w:ascii="Arial"`, `w:cs="Arial"`, `<w:sz w:val="24"/>`, `w:styleId="ListNumber"`} {
		if !strings.Contains(styles, want) {
			t.Errorf("styles.xml missing %s", want)
		}
	}
}

func TestDocument_AddHeading_InvalidLevel(t *testing.T) {
	t.Parallel()

	d, err := docx.New(docx.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, level := range []int{0, 4, -1} {
		if err := d.AddHeading(level, "x"); !errors.Is(err, docx.ErrHeadingLevel) {
			t.Errorf("AddHeading(%d) error = %v, want ErrHeadingLevel", level, err)
		}
	}
	if d.Len() != 0 {
		t.Errorf("rejected headings were appended: Len() = %d", d.Len())
	}
}

// ---------------------------------------------------------------------------
// TestDocument_Save - File output
// ---------------------------------------------------------------------------

func TestDocument_Save(t *testing.T) {
	t.Parallel()

	d, err := docx.New(docx.Options{})
	if err != nil {
		t.Fatal(err)
	}
	d.AddParagraph("نص")

	path := filepath.Join(t.TempDir(), "out.docx")
	if err := d.Save(path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := decodeDocument(t, readParts(t, data))
	if len(doc.Paragraphs) != 1 {
		t.Errorf("saved document has %d paragraphs, want 1", len(doc.Paragraphs))
	}
}

func TestDocument_Save_MissingDirectory(t *testing.T) {
	t.Parallel()

	d, err := docx.New(docx.Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "missing", "out.docx")
	if err := d.Save(path); err == nil {
		t.Error("Save() expected error for missing directory, got nil")
	}
}
