package md2doc

import (
	"context"
	"fmt"
)

// renderPPTX hands the source to pandoc. There is no fallback: when
// pandoc is missing or fails, the error carries its diagnostic output.
func (c *Converter) renderPPTX(ctx context.Context, j *job) (Tier, error) {
	if err := c.pandoc(ctx, j, c.cfg.timeouts.Document, j.out, "-t", "pptx"); err != nil {
		j.log.Warn("tier failed", "tier", TierExternal.String(), "tool", c.cfg.pandoc, "error", err)
		return "", fmt.Errorf("%w: pptx: %w", ErrNoFallback, err)
	}
	return TierExternal, nil
}
