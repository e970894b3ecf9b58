package xlsx

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestCellRef(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{4, 2, "C5"},
		{0, 25, "Z1"},
		{0, 26, "AA1"},
		{9, 27, "AB10"},
	}
	for _, tc := range tests {
		if got := CellRef(tc.row, tc.col); got != tc.want {
			t.Errorf("CellRef(%d, %d) = %s, want %s", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestSaveProducesReadableArchive(t *testing.T) {
	wb := NewWorkbook("Report", zaptest.NewLogger(t))
	wb.SetCell(0, 0, "title")
	wb.SetCell(1, 0, "amount")
	wb.SetCell(1, 1, 12.5)
	wb.SetCell(2, 1, 7)
	wb.SetCell(3, 0, true)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := wb.Save(path); err != nil {
		t.Fatal(err)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	parts := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		parts[f.Name] = string(data)
	}

	for _, name := range []string{
		"[Content_Types].xml", "_rels/.rels",
		"xl/workbook.xml", "xl/_rels/workbook.xml.rels",
		"xl/styles.xml", "xl/worksheets/sheet1.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Fatalf("archive is missing %s (has %v)", name, len(parts))
		}
	}

	if !strings.Contains(parts["xl/workbook.xml"], `name="Report"`) {
		t.Fatal("workbook part does not carry the sheet name")
	}
	sheet := parts["xl/worksheets/sheet1.xml"]
	if !strings.Contains(sheet, `r="A1"`) || !strings.Contains(sheet, "title") {
		t.Fatalf("sheet is missing the string cell: %s", sheet)
	}
	if !strings.Contains(sheet, `r="B2"`) || !strings.Contains(sheet, "12.5") {
		t.Fatalf("sheet is missing the number cell: %s", sheet)
	}
	if !strings.Contains(sheet, `t="b"`) {
		t.Fatalf("sheet is missing the boolean cell: %s", sheet)
	}
}

func TestEmptyWorkbookStillSaves(t *testing.T) {
	wb := NewWorkbook("", zaptest.NewLogger(t))
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := wb.Save(path); err != nil {
		t.Fatal(err)
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	r.Close()
}

func TestLaterWritesWin(t *testing.T) {
	wb := NewWorkbook("s", nil)
	wb.SetCell(0, 0, "first")
	wb.SetCell(0, 0, "second")
	if wb.CellCount() != 1 {
		t.Fatalf("CellCount = %d, want 1", wb.CellCount())
	}
}
