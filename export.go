package main

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// exportColumn pairs a header caption with its cell width in mm.
type exportColumn struct {
	Name  string
	Width float64
}

// Column layout of the daily recap, one column per sheet field. Widths
// add up inside the printable width of an A4 portrait page.
var exportColumns = []exportColumn{
	{"Tanggal Input", 26},
	{"Nomor Berkas", 26},
	{"Tahun", 26},
	{"Jam Layanan", 26},
	{"Status", 26},
	{"Keterangan", 26},
	{"Petugas", 26},
}

// Cells are cut to this many characters so the grid keeps its width.
const exportCellLimit = 15

// renderPDF lays a pre-filtered day slice out as a bordered table: a
// centered title on every page, the report date, one header row, one
// row per record, and a page-number footer. Page breaks are automatic.
func renderPDF(records []Report, columns []exportColumn, date string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Laporan Harian Petugas - Kantor Pertanahan", "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Halaman %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "Tanggal Laporan: "+date, "", 1, "L", false, 0, "")

	for _, col := range columns {
		pdf.CellFormat(col.Width, 10, truncateCell(col.Name), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	for _, rec := range records {
		for i, cell := range reportToRow(rec) {
			pdf.CellFormat(columns[i].Width, 10, truncateCell(cell), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncateCell(s string) string {
	runes := []rune(s)
	if len(runes) <= exportCellLimit {
		return s
	}
	return string(runes[:exportCellLimit])
}
