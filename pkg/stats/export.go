package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
)

var exportColumns = []string{
	ColDate,
	ColState,
	ColTotalEnrolment,
	ColDemographicUpdates,
	ColBiometricUpdates,
	ColDUI,
	ColBUBI,
	ColStateClean,
}

const exportSheet = "Sheet1"

// WriteCSV writes the view as comma-separated UTF-8 text with a header
// row. The same view always produces the same bytes.
func WriteCSV(w io.Writer, v View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return err
	}
	for _, r := range v.records {
		row := []string{
			r.Date.Format(DateLayout),
			r.State,
			strconv.FormatInt(r.TotalEnrolment, 10),
			strconv.FormatInt(r.DemographicUpdates, 10),
			strconv.FormatInt(r.BiometricUpdates, 10),
			formatIndicator(r.DUI),
			formatIndicator(r.BUBI),
			r.Region,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the view as a single-sheet workbook with the same
// columns as WriteCSV.
func WriteXLSX(w io.Writer, v View) error {
	f := xlsx.NewFile()

	head := make([]interface{}, len(exportColumns))
	for i, c := range exportColumns {
		head[i] = c
	}
	if err := f.SetSheetRow(exportSheet, "A1", &head); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range v.records {
		cell, err := xlsx.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Date.Format(DateLayout),
			r.State,
			r.TotalEnrolment,
			r.DemographicUpdates,
			r.BiometricUpdates,
			indicatorCell(r.DUI),
			indicatorCell(r.BUBI),
			r.Region,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}

// ExportFileName names a downloaded view after its region and interval.
func ExportFileName(v View, ext string) string {
	return fmt.Sprintf("filtered_%s_%s_%s.%s",
		v.Region, v.Interval.Start.Format(DateLayout), v.Interval.End.Format(DateLayout), ext)
}

func formatIndicator(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func indicatorCell(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
