package master

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadWorkbook reads the AC master directory from an xlsx workbook. The
// first sheet must carry a header row; recognized columns are ACNO,
// BankName, AccountName, AccountType, Currency and Branch (case and
// spacing insensitive). Rows without an account number are skipped.
func LoadWorkbook(path string) (Directory, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening master workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
		cols[key] = i
	}
	if _, ok := cols["acno"]; !ok {
		return nil, fmt.Errorf("master workbook %q has no ACNO column", path)
	}

	cell := func(row []string, key string) string {
		i, ok := cols[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var dir Directory
	for _, row := range rows[1:] {
		acNo := strings.ReplaceAll(cell(row, "acno"), "'", "")
		if acNo == "" {
			continue
		}
		dir = append(dir, Account{
			AccountNo:   acNo,
			BankName:    cell(row, "bankname"),
			AccountName: cell(row, "accountname"),
			AccountType: cell(row, "accounttype"),
			Currency:    cell(row, "currency"),
			Branch:      cell(row, "branch"),
		})
	}
	return dir, nil
}
