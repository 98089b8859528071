package stats

import (
	"fmt"
	"time"
)

// Query is one analyst interaction: a region and a requested date range.
// Zero dates mean "use the dataset bound".
type Query struct {
	Region string
	Start  time.Time
	End    time.Time
}

// Report is everything derived for one query.
type Report struct {
	Region     string     `json:"region"`
	Start      string     `json:"start"`
	End        string     `json:"end"`
	Summary    Summary    `json:"summary"`
	Audit      Audit      `json:"audit"`
	Counts     Chart      `json:"counts"`
	Ratios     Chart      `json:"ratios"`
	Comparison Comparison `json:"comparison"`

	View View `json:"-"`
}

// Dashboard runs a full recomputation for q. An empty selection returns an
// error wrapping ErrNoData; the dataset and its cached values are untouched.
func (ds *Dataset) Dashboard(q Query) (*Report, error) {
	iv := ds.ResolveInterval(q.Start, q.End)
	v := ds.Filter(q.Region, iv)
	if v.Empty() {
		return nil, fmt.Errorf("region %q %s..%s: %w",
			q.Region, iv.Start.Format(DateLayout), iv.End.Format(DateLayout), ErrNoData)
	}

	bench := ds.Benchmark()

	summary, err := Summarize(v, bench)
	if err != nil {
		return nil, err
	}
	audit, err := AuditLatest(v)
	if err != nil {
		return nil, err
	}

	return &Report{
		Region:     q.Region,
		Start:      iv.Start.Format(DateLayout),
		End:        iv.End.Format(DateLayout),
		Summary:    summary,
		Audit:      audit,
		Counts:     CountChart(v),
		Ratios:     RatioChart(v, bench),
		Comparison: ds.Comparison(q.Region),
		View:       v,
	}, nil
}
