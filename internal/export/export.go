// Package export renders transaction lists as CSV, XLSX and JSON snapshots.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"homebudget/internal/models"
	"homebudget/internal/service"

	"github.com/xuri/excelize/v2"
)

var header = []string{"ID", "Description", "Type", "Value", "Category", "Person"}

func row(t models.Transaction) []string {
	category := "#" + strconv.FormatUint(uint64(t.CategoryID), 10)
	if t.Category != nil {
		category = t.Category.Description
	}
	person := "#" + strconv.FormatUint(uint64(t.PersonID), 10)
	if t.Person != nil {
		person = t.Person.Name
	}
	return []string{
		strconv.FormatUint(uint64(t.ID), 10),
		t.Description,
		t.Type.String(),
		t.Value.StringFixed(2),
		category,
		person,
	}
}

// WriteCSV writes one line per transaction after a header row. A UTF-8 BOM
// is prepended so spreadsheet apps pick the right encoding.
func WriteCSV(w io.Writer, txs []models.Transaction) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txs {
		if err := cw.Write(row(t)); err != nil {
			return fmt.Errorf("write csv row %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const (
	transactionsSheet = "Transactions"
	totalsSheet       = "Totals"
)

// WriteXLSX writes a workbook with the transaction list on one sheet and
// the income/expense/balance summary on a second.
func WriteXLSX(w io.Writer, totals service.Totals) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(transactionsSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for idx, t := range totals.Transactions {
		r := idx + 2
		for col, v := range row(t) {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			var val interface{} = v
			if col == 3 {
				// numeric cell so spreadsheets can sum it
				val = t.Value.InexactFloat64()
			}
			if err := f.SetCellValue(transactionsSheet, cell, val); err != nil {
				return fmt.Errorf("write row %d: %w", t.ID, err)
			}
		}
	}
	_ = f.SetColWidth(transactionsSheet, "A", "A", 8)
	_ = f.SetColWidth(transactionsSheet, "B", "B", 30)
	_ = f.SetColWidth(transactionsSheet, "C", "D", 12)
	_ = f.SetColWidth(transactionsSheet, "E", "F", 20)

	if _, err := f.NewSheet(totalsSheet); err != nil {
		return fmt.Errorf("create totals sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Total income", totals.TotalIncome.StringFixed(2)},
		{"Total expense", totals.TotalExpense.StringFixed(2)},
		{"Balance", totals.Balance().StringFixed(2)},
	}
	for i, line := range summary {
		if err := f.SetSheetRow(totalsSheet, fmt.Sprintf("A%d", i+1), &line); err != nil {
			return fmt.Errorf("write totals: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// Snapshot is a full JSON dump of the ledger.
type Snapshot struct {
	Created      time.Time            `json:"created"`
	Persons      []models.Person      `json:"persons"`
	Categories   []models.Category    `json:"categories"`
	Transactions []models.Transaction `json:"transactions"`
}

func WriteJSON(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
