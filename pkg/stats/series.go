package stats

import "time"

// Chart is a render-ready set of date series.
type Chart struct {
	Title      string          `json:"title"`
	XAxis      string          `json:"xAxis"`
	YAxis      string          `json:"yAxis"`
	Series     []ChartSeries   `json:"series"`
	References []ReferenceLine `json:"references,omitempty"`
}

// ChartSeries is one named line of a chart.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint is a dated value.
type ChartPoint struct {
	Date  time.Time `json:"-"`
	Label string    `json:"label"`
	Value Float     `json:"value"`
}

// ReferenceLine is a constant horizontal line, such as a benchmark.
type ReferenceLine struct {
	Name  string `json:"name"`
	Value Float  `json:"value"`
}

// CountChart plots raw enrolment and update counts over time.
func CountChart(v View) Chart {
	return Chart{
		Title: "Enrolment and Updates Over Time",
		XAxis: "Date",
		YAxis: "Count",
		Series: []ChartSeries{
			series(v, "Total Enrolment", func(r Record) float64 { return float64(r.TotalEnrolment) }),
			series(v, "Demographic Updates", func(r Record) float64 { return float64(r.DemographicUpdates) }),
			series(v, "Biometric Updates", func(r Record) float64 { return float64(r.BiometricUpdates) }),
		},
	}
}

// RatioChart plots the stored DUI and BUBI with the national benchmark as
// reference lines.
func RatioChart(v View, b Benchmark) Chart {
	return Chart{
		Title: "DUI and BUBI",
		XAxis: "Date",
		YAxis: "Ratio",
		Series: []ChartSeries{
			series(v, "DUI", func(r Record) float64 { return r.DUI }),
			series(v, "BUBI", func(r Record) float64 { return r.BUBI }),
		},
		References: []ReferenceLine{
			{Name: "National DUI", Value: b.DUI},
			{Name: "National BUBI", Value: b.BUBI},
		},
	}
}

func series(v View, name string, value func(Record) float64) ChartSeries {
	points := make([]ChartPoint, 0, v.Len())
	for _, r := range v.records {
		points = append(points, ChartPoint{
			Date:  r.Date,
			Label: r.Date.Format(DateLayout),
			Value: Float(value(r)),
		})
	}
	return ChartSeries{Name: name, Data: points}
}
