package stats_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anrid/lifecycle-stats/pkg/stats"
)

func TestFormatSummary(t *testing.T) {
	kpi := stats.FormatSummary(stats.Summary{
		AvgEnrolment: 1234567.89,
		AvgDUI:       0.12549,
		AvgBUBI:      0.0504,
		TotalUpdates: 9876543,
		Benchmark:    stats.Benchmark{DUI: 0.1, BUBI: 0.0612},
	})

	assert.Equal(t, "1,234,567", kpi.AvgEnrolment)
	assert.Equal(t, "0.125", kpi.DUI)
	assert.Equal(t, "+0.025", kpi.DeltaDUI)
	assert.Equal(t, "0.050", kpi.BUBI)
	assert.Equal(t, "-0.011", kpi.DeltaBUBI)
	assert.Equal(t, "9,876,543", kpi.TotalUpdates)
	assert.Equal(t, "0.100", kpi.NationalDUI)
}

func TestFormatUndefined(t *testing.T) {
	assert.Equal(t, "nan", stats.FormatRatio(stats.Float(math.NaN())))
	assert.Equal(t, "0.333", stats.FormatRatio(1.0/3))
	assert.Equal(t, "12,000", stats.FormatCount(12000))

	kpi := stats.FormatSummary(stats.Summary{AvgDUI: stats.Float(math.NaN()), AvgBUBI: 0.1})
	assert.Equal(t, "nan", kpi.DUI)
	assert.Equal(t, "nan", kpi.DeltaDUI)
}
