package stats

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrNoData is returned when a region and interval select no records.
	ErrNoData = errors.New("no data for these filters")

	// ErrMissingColumn is returned when the input header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnsupportedFormat is returned for input files that are not CSV, XLSX or XLS.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// Record is one row of the aggregated lifecycle dataset: the enrolment and
// update counts reported by a single state on a single day.
type Record struct {
	Date               time.Time
	State              string // raw label as read
	Region             string // canonical label
	TotalEnrolment     int64
	DemographicUpdates int64
	BiometricUpdates   int64

	// Stored indicators. They are expected to match the computed ratios but
	// are read independently and may drift.
	DUI  float64
	BUBI float64
}

// ComputedDUI is demographic updates over total enrolment, NaN when there
// is no enrolment to divide by.
func (r Record) ComputedDUI() float64 {
	return ratio(r.DemographicUpdates, r.TotalEnrolment)
}

// ComputedBUBI is biometric updates over total enrolment, NaN when there is
// no enrolment to divide by.
func (r Record) ComputedBUBI() float64 {
	return ratio(r.BiometricUpdates, r.TotalEnrolment)
}

// Updates is the combined demographic and biometric update count.
func (r Record) Updates() int64 {
	return r.DemographicUpdates + r.BiometricUpdates
}

func ratio(n, d int64) float64 {
	if d == 0 {
		return math.NaN()
	}
	return float64(n) / float64(d)
}

// Interval is an inclusive range of calendar days.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls on a day within the interval.
func (iv Interval) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(iv.Start)) && !d.After(Day(iv.End))
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const DateLayout = "2006-01-02"

// Benchmark is the national DUI/BUBI baseline.
type Benchmark struct {
	DUI  Float `json:"dui"`
	BUBI Float `json:"bubi"`
}
