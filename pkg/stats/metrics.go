package stats

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Float is a float64 that encodes NaN and infinities as JSON null.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
}

func (f Float) IsNaN() bool {
	return math.IsNaN(float64(f))
}

// Summary holds the KPIs of a filtered view. DUI and BUBI averages use the
// stored indicators, not the computed ratios.
type Summary struct {
	Records          int       `json:"records"`
	AvgEnrolment     Float     `json:"avg_enrolment"`
	AvgDUI           Float     `json:"avg_dui"`
	AvgBUBI          Float     `json:"avg_bubi"`
	DeltaDUI         Float     `json:"delta_dui"`
	DeltaBUBI        Float     `json:"delta_bubi"`
	TotalDemographic int64     `json:"total_demographic_updates"`
	TotalBiometric   int64     `json:"total_biometric_updates"`
	TotalUpdates     int64     `json:"total_updates"`
	Benchmark        Benchmark `json:"benchmark"`
}

// Summarize aggregates a non-empty view and compares it with the national
// benchmark.
func Summarize(v View, b Benchmark) (Summary, error) {
	if v.Empty() {
		return Summary{}, fmt.Errorf("summarize %s: %w", v.Region, ErrNoData)
	}

	s := Summary{Records: v.Len(), Benchmark: b}

	var enrolment float64
	for _, r := range v.records {
		enrolment += float64(r.TotalEnrolment)
		s.TotalDemographic += r.DemographicUpdates
		s.TotalBiometric += r.BiometricUpdates
	}
	s.TotalUpdates = s.TotalDemographic + s.TotalBiometric

	s.AvgEnrolment = Float(enrolment / float64(v.Len()))
	s.AvgDUI = Float(meanOf(v.records, func(r Record) float64 { return r.DUI }))
	s.AvgBUBI = Float(meanOf(v.records, func(r Record) float64 { return r.BUBI }))
	s.DeltaDUI = s.AvgDUI - b.DUI
	s.DeltaBUBI = s.AvgBUBI - b.BUBI
	return s, nil
}

// Audit compares the stored indicators of the latest record with the ratios
// computed from its counts.
type Audit struct {
	Date               time.Time `json:"date"`
	TotalEnrolment     int64     `json:"total_enrolment"`
	DemographicUpdates int64     `json:"demographic_updates"`
	BiometricUpdates   int64     `json:"biometric_updates"`
	ReportedDUI        Float     `json:"reported_dui"`
	ReportedBUBI       Float     `json:"reported_bubi"`
	ComputedDUI        Float     `json:"computed_dui"`
	ComputedBUBI       Float     `json:"computed_bubi"`
}

// AuditLatest builds the audit cross-check for the view's latest record.
func AuditLatest(v View) (Audit, error) {
	r, ok := v.Latest()
	if !ok {
		return Audit{}, fmt.Errorf("audit %s: %w", v.Region, ErrNoData)
	}
	return Audit{
		Date:               r.Date,
		TotalEnrolment:     r.TotalEnrolment,
		DemographicUpdates: r.DemographicUpdates,
		BiometricUpdates:   r.BiometricUpdates,
		ReportedDUI:        Float(r.DUI),
		ReportedBUBI:       Float(r.BUBI),
		ComputedDUI:        Float(r.ComputedDUI()),
		ComputedBUBI:       Float(r.ComputedBUBI()),
	}, nil
}

// meanOf averages value over records, skipping NaN. It is NaN when no
// value is defined.
func meanOf(records []Record, value func(Record) float64) float64 {
	var (
		sum float64
		n   int
	)
	for _, r := range records {
		v := value(r)
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
