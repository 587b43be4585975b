package httpapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

// exportHeader is the flattened-row column order; it matches the JSON field
// names of BorrowingDetail.
var exportHeader = []string{
	"borrowing_id", "borrowed_at", "due_date", "returned_at",
	"book_id", "book_title", "book_author", "book_isbn",
	"borrower_id", "borrower_name", "borrower_email",
}

func exportRow(d *models.BorrowingDetail) []string {
	returnedAt := ""
	if d.ReturnedAt != nil {
		returnedAt = d.ReturnedAt.Format(time.RFC3339)
	}

	return []string{
		strconv.FormatInt(d.ID, 10),
		d.BorrowedAt.Format(time.RFC3339),
		d.DueDate.Format(time.RFC3339),
		returnedAt,
		strconv.FormatInt(d.BookID, 10),
		d.BookTitle,
		d.BookAuthor,
		d.BookISBN,
		strconv.FormatInt(d.BorrowerID, 10),
		d.BorrowerName,
		d.BorrowerEmail,
	}
}

// writeCSVExport streams the rows as a CSV attachment.
func writeCSVExport(w http.ResponseWriter, filename string, rows []models.BorrowingDetail) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for i := range rows {
		if err := cw.Write(exportRow(&rows[i])); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

const xlsxSheet = "Borrowings"

// writeXLSXExport renders the rows as a spreadsheet with a bold header row.
func writeXLSXExport(w http.ResponseWriter, filename string, rows []models.BorrowingDetail) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", xlsxSheet)

	header := make([]any, len(exportHeader))
	for i, col := range exportHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", lastCol, boldStyle); err != nil {
		return err
	}

	for i := range rows {
		values := exportRow(&rows[i])
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return err
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))

	_, err = f.WriteTo(w)
	return err
}
