// Package xlsx writes the spreadsheet output: a minimal OOXML workbook with a
// single sheet holding the cells the layout core emitted. Strings are stored
// inline, so the workbook needs no shared string table.
package xlsx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"
)

// Workbook implements layout.SheetWriter and serializes to an .xlsx file.
// Cell coordinates are 0-based.
type Workbook struct {
	sheetName string
	cells     map[[2]int]any
	maxRow    int
	maxCol    int
	log       *zap.Logger
}

func NewWorkbook(sheetName string, log *zap.Logger) *Workbook {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Workbook{
		sheetName: sheetName,
		cells:     make(map[[2]int]any),
		log:       log.Named("xlsx"),
	}
}

// SetCell stores a value; later writes to the same cell win.
func (w *Workbook) SetCell(row, col int, value any) {
	w.cells[[2]int{row, col}] = value
	if row > w.maxRow {
		w.maxRow = row
	}
	if col > w.maxCol {
		w.maxCol = col
	}
}

func (w *Workbook) CellCount() int { return len(w.cells) }

// Save writes the workbook. The archive is first assembled next to the target
// and then rewritten without data descriptor records - some spreadsheet
// consumers choke on streamed entries.
func (w *Workbook) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	tmpName := path + ".tmp"

	f, err := os.Create(tmpName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()
	defer os.Remove(tmpName)

	zw := zip.NewWriter(f)
	defer zw.Close()

	if err := w.writeContentTypes(zw); err != nil {
		return fmt.Errorf("unable to write content types: %w", err)
	}
	if err := w.writeRels(zw); err != nil {
		return fmt.Errorf("unable to write package relationships: %w", err)
	}
	if err := w.writeWorkbook(zw); err != nil {
		return fmt.Errorf("unable to write workbook part: %w", err)
	}
	if err := w.writeWorkbookRels(zw); err != nil {
		return fmt.Errorf("unable to write workbook relationships: %w", err)
	}
	if err := w.writeStyles(zw); err != nil {
		return fmt.Errorf("unable to write styles: %w", err)
	}
	if err := w.writeSheet(zw); err != nil {
		return fmt.Errorf("unable to write sheet: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}

	w.log.Debug("Workbook written", zap.String("file", path), zap.Int("cells", len(w.cells)))
	return copyZipWithoutDataDescriptors(tmpName, path)
}

func (w *Workbook) writeContentTypes(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")

	rels := types.CreateElement("Default")
	rels.CreateAttr("Extension", "rels")
	rels.CreateAttr("ContentType", "application/vnd.openxmlformats-package.relationships+xml")

	xml := types.CreateElement("Default")
	xml.CreateAttr("Extension", "xml")
	xml.CreateAttr("ContentType", "application/xml")

	wb := types.CreateElement("Override")
	wb.CreateAttr("PartName", "/xl/workbook.xml")
	wb.CreateAttr("ContentType", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml")

	sheet := types.CreateElement("Override")
	sheet.CreateAttr("PartName", "/xl/worksheets/sheet1.xml")
	sheet.CreateAttr("ContentType", "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml")

	styles := types.CreateElement("Override")
	styles.CreateAttr("PartName", "/xl/styles.xml")
	styles.CreateAttr("ContentType", "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml")

	return writeXMLToZip(zw, "[Content_Types].xml", doc)
}

func (w *Workbook) writeRels(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")

	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", "rId1")
	rel.CreateAttr("Type", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument")
	rel.CreateAttr("Target", "xl/workbook.xml")

	return writeXMLToZip(zw, "_rels/.rels", doc)
}

func (w *Workbook) writeWorkbook(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	wb := doc.CreateElement("workbook")
	wb.CreateAttr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	wb.CreateAttr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	sheets := wb.CreateElement("sheets")
	sheet := sheets.CreateElement("sheet")
	sheet.CreateAttr("name", w.sheetName)
	sheet.CreateAttr("sheetId", "1")
	sheet.CreateAttr("r:id", "rId1")

	return writeXMLToZip(zw, "xl/workbook.xml", doc)
}

func (w *Workbook) writeWorkbookRels(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")

	sheet := rels.CreateElement("Relationship")
	sheet.CreateAttr("Id", "rId1")
	sheet.CreateAttr("Type", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet")
	sheet.CreateAttr("Target", "worksheets/sheet1.xml")

	styles := rels.CreateElement("Relationship")
	styles.CreateAttr("Id", "rId2")
	styles.CreateAttr("Type", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles")
	styles.CreateAttr("Target", "styles.xml")

	return writeXMLToZip(zw, "xl/_rels/workbook.xml.rels", doc)
}

func (w *Workbook) writeStyles(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	ss := doc.CreateElement("styleSheet")
	ss.CreateAttr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")

	fonts := ss.CreateElement("fonts")
	fonts.CreateAttr("count", "1")
	font := fonts.CreateElement("font")
	sz := font.CreateElement("sz")
	sz.CreateAttr("val", "11")

	fills := ss.CreateElement("fills")
	fills.CreateAttr("count", "1")
	fill := fills.CreateElement("fill")
	pattern := fill.CreateElement("patternFill")
	pattern.CreateAttr("patternType", "none")

	borders := ss.CreateElement("borders")
	borders.CreateAttr("count", "1")
	borders.CreateElement("border")

	xfs := ss.CreateElement("cellXfs")
	xfs.CreateAttr("count", "1")
	xf := xfs.CreateElement("xf")
	xf.CreateAttr("numFmtId", "0")
	xf.CreateAttr("fontId", "0")
	xf.CreateAttr("fillId", "0")
	xf.CreateAttr("borderId", "0")

	return writeXMLToZip(zw, "xl/styles.xml", doc)
}

func (w *Workbook) writeSheet(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	ws := doc.CreateElement("worksheet")
	ws.CreateAttr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")

	data := ws.CreateElement("sheetData")
	for row := 0; row <= w.maxRow; row++ {
		var rowElem *etree.Element
		for col := 0; col <= w.maxCol; col++ {
			value, ok := w.cells[[2]int{row, col}]
			if !ok {
				continue
			}
			if rowElem == nil {
				rowElem = data.CreateElement("row")
				rowElem.CreateAttr("r", strconv.Itoa(row+1))
			}
			cell := rowElem.CreateElement("c")
			cell.CreateAttr("r", CellRef(row, col))
			writeCellValue(cell, value)
		}
	}

	return writeXMLToZip(zw, "xl/worksheets/sheet1.xml", doc)
}

func writeCellValue(cell *etree.Element, value any) {
	switch v := value.(type) {
	case bool:
		cell.CreateAttr("t", "b")
		n := cell.CreateElement("v")
		if v {
			n.SetText("1")
		} else {
			n.SetText("0")
		}
	case int:
		cell.CreateElement("v").SetText(strconv.Itoa(v))
	case int64:
		cell.CreateElement("v").SetText(strconv.FormatInt(v, 10))
	case float64:
		cell.CreateElement("v").SetText(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		cell.CreateAttr("t", "inlineStr")
		is := cell.CreateElement("is")
		is.CreateElement("t").SetText(fmt.Sprintf("%v", v))
	}
}

// CellRef converts 0-based row/column to an A1-style reference.
func CellRef(row, col int) string {
	var name []byte
	c := col
	for {
		name = append([]byte{byte('A' + c%26)}, name...)
		c = c/26 - 1
		if c < 0 {
			break
		}
	}
	return string(name) + strconv.Itoa(row+1)
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	zf, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = zf.Write(buf.Bytes())
	return err
}

func copyZipWithoutDataDescriptors(from, to string) error {
	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to finalize target file (%s): %w", to, err)
	}
	return out.Close()
}
