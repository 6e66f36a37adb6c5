package md2doc

// Notes:
// - Workbooks are reopened with excelize and checked cell by cell.
// - Fill colors are compared by suffix: excelize may report them with an
//   alpha prefix.

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

// ---------------------------------------------------------------------------
// TestConvert_XLSX - Workbook content and styling
// ---------------------------------------------------------------------------

func TestConvert_XLSX(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	c := newTestConverter(t, WithCommandRunner(runner))
	out := filepath.Join(t.TempDir(), "out.xlsx")
	src := "# العنوان\n\n## قسم\n- عنصر\n1. خطوة\nفقرة عادية"

	res, err := c.Convert(context.Background(), Request{Markdown: src, OutputPath: out, Format: FormatXLSX})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if res.Tier != TierNative {
		t.Errorf("Tier = %q, want native", res.Tier)
	}
	if len(runner.Calls()) != 0 {
		t.Error("xlsx format invoked an external tool")
	}

	f := openWorkbook(t, out)

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "المحتوى" {
		t.Fatalf("sheets = %v, want [المحتوى]", sheets)
	}
	sheet := sheets[0]

	wantCells := []string{"العنوان", "قسم", "عنصر", "خطوة", "فقرة عادية"}
	for i, want := range wantCells {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	width, err := f.GetColWidth(sheet, "A")
	if err != nil {
		t.Fatal(err)
	}
	if width != 100 {
		t.Errorf("column A width = %v, want 100", width)
	}
}

func TestConvert_XLSX_Styles(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)
	out := filepath.Join(t.TempDir(), "out.xlsx")

	if _, err := c.Convert(context.Background(), Request{Markdown: "# h1\n### h3\nbody", OutputPath: out, Format: FormatXLSX}); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	f := openWorkbook(t, out)
	sheet := f.GetSheetList()[0]

	tests := []struct {
		cell     string
		bold     bool
		size     float64
		filled   bool
		wantWrap bool
	}{
		{"A1", true, 14, true, true},
		{"A2", true, 12, true, true},
		{"A3", false, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			idx, err := f.GetCellStyle(sheet, tt.cell)
			if err != nil {
				t.Fatal(err)
			}
			style, err := f.GetStyle(idx)
			if err != nil {
				t.Fatal(err)
			}

			if style.Alignment == nil || style.Alignment.Horizontal != "right" || style.Alignment.Vertical != "top" || style.Alignment.WrapText != tt.wantWrap {
				t.Errorf("alignment = %+v, want right/top/wrap", style.Alignment)
			}
			if tt.bold {
				if style.Font == nil || !style.Font.Bold || style.Font.Size != tt.size {
					t.Errorf("font = %+v, want bold size %v", style.Font, tt.size)
				}
			}
			hasFill := len(style.Fill.Color) > 0 && strings.HasSuffix(strings.ToUpper(style.Fill.Color[0]), "E0E7FF")
			if hasFill != tt.filled {
				t.Errorf("fill = %+v, want filled=%v", style.Fill, tt.filled)
			}
		})
	}
}

func TestConvert_XLSX_Empty(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)
	out := filepath.Join(t.TempDir(), "out.xlsx")

	if _, err := c.Convert(context.Background(), Request{Markdown: "\n\n  \n", OutputPath: out, Format: FormatXLSX}); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	f := openWorkbook(t, out)
	rows, err := f.GetRows(f.GetSheetList()[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("empty source produced %d rows", len(rows))
	}
}

func TestConvert_XLSX_Options(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t, WithSheetName("Content"), WithColumnWidth(60))
	out := filepath.Join(t.TempDir(), "out.xlsx")

	if _, err := c.Convert(context.Background(), Request{Markdown: "x", OutputPath: out, Format: FormatXLSX}); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	f := openWorkbook(t, out)
	if got := f.GetSheetList(); len(got) != 1 || got[0] != "Content" {
		t.Errorf("sheets = %v, want [Content]", got)
	}
	if w, _ := f.GetColWidth("Content", "A"); w != 60 {
		t.Errorf("width = %v, want 60", w)
	}
}

func TestConvert_XLSX_InvalidSheetName(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t, WithSheetName("bad/name"))
	out := filepath.Join(t.TempDir(), "out.xlsx")

	_, err := c.Convert(context.Background(), Request{Markdown: "x", OutputPath: out, Format: FormatXLSX})
	if !errors.Is(err, ErrDocumentBuild) {
		t.Errorf("Convert() error = %v, want ErrDocumentBuild", err)
	}
}
