package stats

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"
)

func ExtractDataFromCSV(f *File, handler func(r []string) error) error {
	reader := csv.NewReader(bytes.NewReader(f.Content))
	reader.FieldsPerRecord = -1

	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read CSV file '%s': %w", f.Name, err)
		}
		if line == 1 && len(row) > 0 {
			row[0] = trimBOM(row[0])
		}
		if err := handler(row); err != nil {
			return err
		}
	}
}

func ExtractDataFromXLS(f *File, handler func(r []string) error) error {
	wb, err := xls.OpenReader(bytes.NewReader(f.Content), "utf-8")
	if err != nil {
		return fmt.Errorf("read XLS file '%s': %w", f.Name, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return fmt.Errorf("read XLS file '%s': no sheets", f.Name)
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		var cols []string
		for j := 0; j <= row.LastCol(); j++ {
			cols = append(cols, row.Col(j))
		}
		if err := handler(cols); err != nil {
			return err
		}
	}
	return nil
}

func ExtractDataFromXLSX(f *File, handler func(r []string) error) error {
	wb, err := xlsx.OpenReader(bytes.NewReader(f.Content))
	if err != nil {
		return fmt.Errorf("read XLSX file '%s': %w", f.Name, err)
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("read XLSX file '%s': no sheets", f.Name)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("get rows for sheet '%s': %w", sheets[0], err)
	}

	for _, r := range rows {
		if err := handler(r); err != nil {
			return err
		}
	}
	return nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
