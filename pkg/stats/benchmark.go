package stats

import (
	"math"
	"slices"
	"time"
)

// NationalBenchmark averages DUI and BUBI across regions for each date, then
// averages those per-date means. Every date weighs the same no matter how
// many regions reported on it.
func NationalBenchmark(records []Record) Benchmark {
	type sum struct {
		dui, bubi   float64
		nDUI, nBUBI int
	}

	byDate := make(map[time.Time]*sum)
	for _, r := range records {
		d := Day(r.Date)
		s, ok := byDate[d]
		if !ok {
			s = &sum{}
			byDate[d] = s
		}
		if !math.IsNaN(r.DUI) {
			s.dui += r.DUI
			s.nDUI++
		}
		if !math.IsNaN(r.BUBI) {
			s.bubi += r.BUBI
			s.nBUBI++
		}
	}

	var (
		dui, bubi   float64
		nDUI, nBUBI int
	)
	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	for _, d := range dates {
		s := byDate[d]
		if s.nDUI > 0 {
			dui += s.dui / float64(s.nDUI)
			nDUI++
		}
		if s.nBUBI > 0 {
			bubi += s.bubi / float64(s.nBUBI)
			nBUBI++
		}
	}

	return Benchmark{DUI: Float(div(dui, nDUI)), BUBI: Float(div(bubi, nBUBI))}
}

// FlatMean is the plain mean of the stored indicators over all records. It
// is not the benchmark; it exists for comparison in reports.
func FlatMean(records []Record) Benchmark {
	return Benchmark{
		DUI:  Float(meanOf(records, func(r Record) float64 { return r.DUI })),
		BUBI: Float(meanOf(records, func(r Record) float64 { return r.BUBI })),
	}
}

func div(sum float64, n int) float64 {
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
