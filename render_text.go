package md2doc

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2doc/internal/pipeline"
)

// renderTXT writes the cleaned source.
func (c *Converter) renderTXT(j *job) (Tier, error) {
	if err := writeOutput(j.out, []byte(CleanMarkdown(j.markdown))); err != nil {
		return "", err
	}
	return TierDirect, nil
}

// renderMD copies the source byte for byte.
func (c *Converter) renderMD(j *job) (Tier, error) {
	if err := writeOutput(j.out, []byte(j.markdown)); err != nil {
		return "", err
	}
	return TierDirect, nil
}

// renderHTML converts the source in-process to a standalone right-to-left page.
func (c *Converter) renderHTML(ctx context.Context, j *job) (Tier, error) {
	page, err := c.html.ToHTML(ctx, pipeline.Normalize(j.markdown), pipeline.DefaultPage())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDocumentBuild, err)
	}
	page = pipeline.InjectCSS(page, pipeline.BaseStylesheet)

	page, err = pipeline.ResolveRelativeLinks(page, j.sourceDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentBuild, err)
	}

	if err := writeOutput(j.out, []byte(page)); err != nil {
		return "", err
	}
	return TierDirect, nil
}
