package stats

import "sort"

// RegionAverage is one point of the cross-region comparison: a region's
// mean DUI and BUBI over every date in the dataset.
type RegionAverage struct {
	Region   string `json:"region"`
	DUI      Float  `json:"dui"`
	BUBI     Float  `json:"bubi"`
	Records  int    `json:"records"`
	Selected bool   `json:"selected,omitempty"`
}

// CrossRegion groups records by canonical region and averages the stored
// indicators of each. Rows are sorted by region.
func CrossRegion(records []Record) []RegionAverage {
	groups := make(map[string][]Record)
	for _, r := range records {
		groups[r.Region] = append(groups[r.Region], r)
	}

	out := make([]RegionAverage, 0, len(groups))
	for region, rs := range groups {
		out = append(out, RegionAverage{
			Region:  region,
			DUI:     Float(meanOf(rs, func(r Record) float64 { return r.DUI })),
			BUBI:    Float(meanOf(rs, func(r Record) float64 { return r.BUBI })),
			Records: len(rs),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}

// Comparison is the scatter view of every region against the benchmark,
// with the selected region singled out.
type Comparison struct {
	Regions   []RegionAverage `json:"regions"`
	Selected  *RegionAverage  `json:"selected,omitempty"`
	Benchmark Benchmark       `json:"benchmark"`
}

// Comparison builds the cross-region view highlighting selected. Selected
// is nil when the region has no records.
func (ds *Dataset) Comparison(selected string) Comparison {
	c := Comparison{Regions: ds.RegionAverages(), Benchmark: ds.Benchmark()}
	for i := range c.Regions {
		if c.Regions[i].Region == selected {
			c.Regions[i].Selected = true
			ra := c.Regions[i]
			c.Selected = &ra
		}
	}
	return c
}
