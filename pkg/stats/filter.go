package stats

import (
	"slices"
	"sort"
	"time"
)

// View is a read-only, date-ascending slice of the dataset for one region
// and an inclusive date interval.
type View struct {
	Region   string
	Interval Interval

	records []Record
}

// Filter selects the records of region within iv, sorted by date. Records
// sharing a date keep their load order.
func Filter(records []Record, region string, iv Interval) View {
	var out []Record
	for _, r := range records {
		if r.Region == region && iv.Contains(r.Date) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return View{Region: region, Interval: iv, records: out}
}

// Filter selects the records of region within iv. An empty View means
// there is nothing to report for this request.
func (ds *Dataset) Filter(region string, iv Interval) View {
	return Filter(ds.records, region, iv)
}

// All is every record of the dataset in date order, regardless of region.
func (ds *Dataset) All() View {
	out := slices.Clone(ds.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return View{Interval: ds.Bounds(), records: out}
}

// ResolveInterval turns a requested range into the one used for filtering.
// A zero start or end takes the dataset bound, and a reversed range falls
// back to the full dataset bounds.
func (ds *Dataset) ResolveInterval(start, end time.Time) Interval {
	b := ds.Bounds()
	iv := Interval{Start: Day(start), End: Day(end)}
	if start.IsZero() {
		iv.Start = b.Start
	}
	if end.IsZero() {
		iv.End = b.End
	}
	if iv.Start.After(iv.End) {
		return b
	}
	return iv
}

func (v View) Len() int { return len(v.records) }

func (v View) Empty() bool { return len(v.records) == 0 }

// At is the i-th record in date order.
func (v View) At(i int) Record { return v.records[i] }

// Records returns a copy of the view's records.
func (v View) Records() []Record {
	return slices.Clone(v.records)
}

// Latest is the most recent record of the view.
func (v View) Latest() (Record, bool) {
	if v.Empty() {
		return Record{}, false
	}
	return v.records[len(v.records)-1], true
}
