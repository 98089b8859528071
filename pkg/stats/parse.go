package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names of the processed lifecycle extract.
const (
	ColDate               = "date"
	ColState              = "state"
	ColTotalEnrolment     = "total_enrolment"
	ColDemographicUpdates = "demographic_updates"
	ColBiometricUpdates   = "biometric_updates"
	ColDUI                = "DUI"
	ColBUBI               = "BUBI"
	ColStateClean         = "state_clean"
)

var requiredColumns = []string{
	ColDate,
	ColState,
	ColTotalEnrolment,
	ColDemographicUpdates,
	ColBiometricUpdates,
	ColDUI,
	ColBUBI,
}

// dateLayouts are tried in order. Fractional seconds after the seconds
// field are accepted by every layout that has one.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006/01/02",
	"20060102",
}

// spreadsheetEpoch is day zero of the 1900 date system as used by Excel
// serial dates (which count the nonexistent 1900-02-29).
var spreadsheetEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is the serial of 9999-12-31, the last day a spreadsheet holds.
const maxSerial = 2958465

// header maps required column names to their position in a row.
type header map[string]int

func parseHeader(row []string) (header, error) {
	seen := make(map[string]int, len(row))
	for i, name := range row {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := seen[key]; !dup {
			seen[key] = i
		}
	}

	h := make(header, len(requiredColumns))
	var missing []string
	for _, col := range requiredColumns {
		i, ok := seen[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		h[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return h, nil
}

func (h header) cell(row []string, col string) string {
	i := h[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) record(row []string) (Record, error) {
	var (
		r   Record
		err error
	)

	if r.Date, err = parseDate(h.cell(row, ColDate)); err != nil {
		return r, err
	}
	r.State = h.cell(row, ColState)

	if r.TotalEnrolment, err = parseCount(ColTotalEnrolment, h.cell(row, ColTotalEnrolment)); err != nil {
		return r, err
	}
	if r.DemographicUpdates, err = parseCount(ColDemographicUpdates, h.cell(row, ColDemographicUpdates)); err != nil {
		return r, err
	}
	if r.BiometricUpdates, err = parseCount(ColBiometricUpdates, h.cell(row, ColBiometricUpdates)); err != nil {
		return r, err
	}
	if r.DUI, err = parseIndicator(ColDUI, h.cell(row, ColDUI)); err != nil {
		return r, err
	}
	if r.BUBI, err = parseIndicator(ColBUBI, h.cell(row, ColBUBI)); err != nil {
		return r, err
	}
	return r, nil
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("column %s: empty date", ColDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return Day(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial >= 1 && serial <= maxSerial {
		return Day(spreadsheetEpoch.AddDate(0, 0, int(serial))), nil
	}
	return time.Time{}, fmt.Errorf("column %s: cannot parse date '%s'", ColDate, v)
}

// parseCount accepts integers and integral floats ("100.0"); blank cells
// count as zero.
func parseCount(col, v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("column %s: cannot parse count '%s'", col, v)
		}
		if f < 0 {
			return 0, fmt.Errorf("column %s: negative count %s", col, v)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
		if f >= math.MaxInt64 {
			return 0, fmt.Errorf("column %s: count %s out of range", col, v)
		}
		n = int64(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("column %s: negative count %d", col, n)
	}
	return n, nil
}

// parseIndicator reads a stored ratio; blank cells load as NaN.
func parseIndicator(col, v string) (float64, error) {
	if v == "" {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: cannot parse value '%s'", col, v)
	}
	return f, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
