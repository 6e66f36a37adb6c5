package md2doc

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet styling.
const (
	xlsxHeadingFill   = "E0E7FF"
	xlsxHeading1Size  = 14
	xlsxHeadingNSize  = 12
	xlsxDefaultSheet  = "Sheet1"
	xlsxContentColumn = "A"
)

// renderXLSX writes one row per line record into column A. There is no
// external tool for this format.
func (c *Converter) renderXLSX(j *job) (Tier, error) {
	if err := c.buildXLSX(j.markdown, j.out); err != nil {
		return "", err
	}
	return TierNative, nil
}

func (c *Converter) buildXLSX(markdown, out string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: %v", ErrDocumentBuild, cerr)
		}
	}()

	sheet := c.cfg.sheetName
	if err := f.SetSheetName(xlsxDefaultSheet, sheet); err != nil {
		return fmt.Errorf("%w: sheet name %q: %v", ErrDocumentBuild, sheet, err)
	}
	rtl := true
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentBuild, err)
	}
	if err := f.SetColWidth(sheet, xlsxContentColumn, xlsxContentColumn, c.cfg.columnWidth); err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentBuild, err)
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentBuild, err)
	}

	row := 1
	for rec := range ParseStructure(markdown) {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDocumentBuild, err)
		}
		if err := f.SetCellValue(sheet, cell, rec.Text); err != nil {
			return fmt.Errorf("%w: %v", ErrDocumentBuild, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.forKind(rec.Kind)); err != nil {
			return fmt.Errorf("%w: %v", ErrDocumentBuild, err)
		}
		row++
	}

	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// xlsxStyles holds the style IDs registered in one workbook.
type xlsxStyles struct {
	body     int
	heading1 int
	headingN int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	alignment := &excelize.Alignment{Horizontal: "right", Vertical: "top", WrapText: true}
	fill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{xlsxHeadingFill}}

	var s xlsxStyles
	var err error
	if s.body, err = f.NewStyle(&excelize.Style{Alignment: alignment}); err != nil {
		return s, err
	}
	if s.heading1, err = f.NewStyle(&excelize.Style{
		Alignment: alignment,
		Fill:      fill,
		Font:      &excelize.Font{Bold: true, Size: xlsxHeading1Size},
	}); err != nil {
		return s, err
	}
	if s.headingN, err = f.NewStyle(&excelize.Style{
		Alignment: alignment,
		Fill:      fill,
		Font:      &excelize.Font{Bold: true, Size: xlsxHeadingNSize},
	}); err != nil {
		return s, err
	}
	return s, nil
}

func (s xlsxStyles) forKind(k LineKind) int {
	switch {
	case k == KindHeading1:
		return s.heading1
	case k.IsHeading():
		return s.headingN
	default:
		return s.body
	}
}
