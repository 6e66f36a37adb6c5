// Package docx writes minimal WordprocessingML (.docx) documents.
//
// A Document is a flat list of paragraphs: headings (levels 1-3), bullet
// and numbered list items, and plain paragraphs. Every paragraph shares
// one alignment and the whole document one base font, which is all the
// native DOCX renderer needs.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Sentinel errors.
var (
	ErrHeadingLevel = errors.New("heading level must be between 1 and 3")
	ErrFontSize     = errors.New("font size must be positive")
	ErrAlignment    = errors.New("alignment must be left, center, right or both")
)

// Options sets document-wide formatting.
type Options struct {
	Font      string  // base font family, default Arial
	FontSize  float64 // base size in points, default 12
	Alignment string  // paragraph justification, default right
}

func (o Options) withDefaults() Options {
	if o.Font == "" {
		o.Font = "Arial"
	}
	if o.FontSize == 0 {
		o.FontSize = 12
	}
	if o.Alignment == "" {
		o.Alignment = "right"
	}
	return o
}

func (o Options) validate() error {
	if o.FontSize <= 0 {
		return fmt.Errorf("%w: %v", ErrFontSize, o.FontSize)
	}
	switch o.Alignment {
	case "left", "center", "right", "both":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrAlignment, o.Alignment)
	}
}

type paragraph struct {
	style string // empty for Normal
	text  string
}

// Document accumulates paragraphs in order. The zero value is not usable;
// create one with New.
type Document struct {
	opts       Options
	paragraphs []paragraph
}

// New returns an empty document.
func New(opts Options) (*Document, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Document{opts: opts}, nil
}

// AddHeading appends a heading paragraph.
func (d *Document) AddHeading(level int, text string) error {
	if level < 1 || level > 3 {
		return fmt.Errorf("%w: %d", ErrHeadingLevel, level)
	}
	d.paragraphs = append(d.paragraphs, paragraph{style: fmt.Sprintf("Heading%d", level), text: text})
	return nil
}

// AddBullet appends a "List Bullet" paragraph.
func (d *Document) AddBullet(text string) {
	d.paragraphs = append(d.paragraphs, paragraph{style: "ListBullet", text: text})
}

// AddNumbered appends a "List Number" paragraph. Numbering continues
// across the whole document.
func (d *Document) AddNumbered(text string) {
	d.paragraphs = append(d.paragraphs, paragraph{style: "ListNumber", text: text})
}

// AddParagraph appends a Normal paragraph.
func (d *Document) AddParagraph(text string) {
	d.paragraphs = append(d.paragraphs, paragraph{text: text})
}

// Len returns the number of paragraphs.
func (d *Document) Len() int {
	return len(d.paragraphs)
}

// WriteTo writes the .docx package to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", d.stylesXML()},
		{"word/numbering.xml", []byte(numberingXML)},
		{"word/document.xml", d.documentXML()},
	}

	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return 0, fmt.Errorf("creating part %s: %w", p.name, err)
		}
		if _, err := f.Write(p.content); err != nil {
			return 0, fmt.Errorf("writing part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("closing package: %w", err)
	}

	return buf.WriteTo(w)
}

// Save writes the document to path, removing any partial file on failure.
func (d *Document) Save(path string) (err error) {
	f, err := os.Create(path) // #nosec G304 -- caller-chosen output path
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	_, err = d.WriteTo(f)
	return err
}

func (d *Document) stylesXML() []byte {
	halfPoints := int(math.Round(d.opts.FontSize * 2))
	return fmt.Appendf(nil, stylesTemplate, escape(d.opts.Font), halfPoints)
}

func (d *Document) documentXML() []byte {
	var b bytes.Buffer
	b.WriteString(documentOpen)
	for _, p := range d.paragraphs {
		b.WriteString("<w:p><w:pPr>")
		if p.style != "" {
			fmt.Fprintf(&b, `<w:pStyle w:val="%s"/>`, p.style)
		}
		fmt.Fprintf(&b, `<w:jc w:val="%s"/>`, d.opts.Alignment)
		b.WriteString(`</w:pPr><w:r><w:t xml:space="preserve">`)
		b.WriteString(escape(p.text))
		b.WriteString("</w:t></w:r></w:p>")
	}
	b.WriteString(documentClose)
	return b.Bytes()
}

// escape returns s safe for XML text and attribute values. Characters not
// allowed in XML are replaced with U+FFFD.
func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
