package stats

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"
)

// Dataset is the full, immutable collection of lifecycle records. Derived
// values (benchmark, cross-region averages, region list, bounds) are
// computed on first use and kept for the lifetime of the Dataset.
type Dataset struct {
	Source string
	Loaded time.Time

	records []Record

	benchOnce sync.Once
	bench     Benchmark

	crossOnce sync.Once
	cross     []RegionAverage

	selectOnce sync.Once
	regions    []string
	bounds     Interval
}

// NewDataset copies records and assigns every record its canonical region.
func NewDataset(source string, records []Record) *Dataset {
	rs := make([]Record, len(records))
	for i, r := range records {
		r.Region = Canonicalize(r.State)
		r.Date = Day(r.Date)
		rs[i] = r
	}
	return &Dataset{Source: source, Loaded: time.Now(), records: rs}
}

// LoadFile reads and parses the source at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(f)
}

// Load parses a source file. Any missing column or unparseable cell fails
// the whole load.
func Load(f *File) (*Dataset, error) {
	var (
		h       header
		records []Record
		line    int
	)

	err := ExtractRows(f, func(row []string) error {
		line++
		if h == nil {
			parsed, err := parseHeader(row)
			if err != nil {
				return err
			}
			h = parsed
			return nil
		}
		if blank(row) {
			return nil
		}
		r, err := h.record(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", f.Name, err)
	}
	if h == nil {
		return nil, fmt.Errorf("load %s: empty file: %w", f.Name, ErrMissingColumn)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("load %s: no records", f.Name)
	}

	return NewDataset(f.Name, records), nil
}

// Len is the number of records.
func (ds *Dataset) Len() int {
	return len(ds.records)
}

// Records returns a copy of all records in load order.
func (ds *Dataset) Records() []Record {
	return slices.Clone(ds.records)
}

// Regions lists the selectable canonical regions, sorted and deduplicated.
func (ds *Dataset) Regions() []string {
	ds.selection()
	return slices.Clone(ds.regions)
}

// Bounds is the earliest and latest date in the dataset.
func (ds *Dataset) Bounds() Interval {
	ds.selection()
	return ds.bounds
}

func (ds *Dataset) selection() {
	ds.selectOnce.Do(func() {
		seen := make(map[string]bool)
		for i, r := range ds.records {
			if i == 0 || r.Date.Before(ds.bounds.Start) {
				ds.bounds.Start = r.Date
			}
			if i == 0 || r.Date.After(ds.bounds.End) {
				ds.bounds.End = r.Date
			}
			if !seen[r.Region] && Selectable(r.Region) {
				seen[r.Region] = true
				ds.regions = append(ds.regions, r.Region)
			}
		}
		sort.Strings(ds.regions)
	})
}

// Benchmark is the national baseline, computed once per Dataset.
func (ds *Dataset) Benchmark() Benchmark {
	ds.benchOnce.Do(func() {
		ds.bench = NationalBenchmark(ds.records)
	})
	return ds.bench
}

// RegionAverages is the cross-region summary, computed once per Dataset.
func (ds *Dataset) RegionAverages() []RegionAverage {
	ds.crossOnce.Do(func() {
		ds.cross = CrossRegion(ds.records)
	})
	return slices.Clone(ds.cross)
}

// Info writes a short description of the dataset.
func (ds *Dataset) Info(w io.Writer) error {
	b := ds.Bounds()
	bench := ds.Benchmark()
	_, err := fmt.Fprintf(w, `
	Source       : %s
	Records      : %d
	Dates        : %s - %s
	Regions      : %d
	National DUI : %.3f
	National BUBI: %.3f
	`, ds.Source, ds.Len(), b.Start.Format(DateLayout), b.End.Format(DateLayout),
		len(ds.Regions()), float64(bench.DUI), float64(bench.BUBI))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "")
	return err
}

// IsNoData reports whether err is an empty selection result.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
