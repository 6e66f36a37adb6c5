package md2doc

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2doc/internal/docx"
)

// renderDOCX tries pandoc, then builds the document natively from the
// line records.
func (c *Converter) renderDOCX(ctx context.Context, j *job) (Tier, error) {
	err := c.pandoc(ctx, j, c.cfg.timeouts.Document, j.out, "--standalone")
	if err == nil {
		return TierExternal, nil
	}
	if err := tierFailed(ctx, j, TierExternal, c.cfg.pandoc, err); err != nil {
		return "", err
	}

	if err := c.buildDOCX(j); err != nil {
		return "", err
	}
	return TierNative, nil
}

// buildDOCX writes one paragraph per line record, right-aligned, in the
// configured base font.
func (c *Converter) buildDOCX(j *job) error {
	doc, err := docx.New(docx.Options{
		Font:      c.cfg.docxFont,
		FontSize:  c.cfg.docxFontSize,
		Alignment: "right",
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentBuild, err)
	}

	for rec := range ParseStructure(j.markdown) {
		switch {
		case rec.Kind.IsHeading():
			if err := doc.AddHeading(rec.Kind.HeadingLevel(), rec.Text); err != nil {
				return fmt.Errorf("%w: %v", ErrDocumentBuild, err)
			}
		case rec.Kind == KindBullet:
			doc.AddBullet(rec.Text)
		case rec.Kind == KindNumbered:
			doc.AddNumbered(rec.Text)
		default:
			doc.AddParagraph(rec.Text)
		}
	}

	if err := doc.Save(j.out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	j.log.Debug("native docx written", "paragraphs", doc.Len())
	return nil
}
