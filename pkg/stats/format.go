package stats

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// KPIText is a Summary formatted for display.
type KPIText struct {
	AvgEnrolment string `json:"avg_enrolment"`
	DUI          string `json:"dui"`
	DeltaDUI     string `json:"delta_dui"`
	BUBI         string `json:"bubi"`
	DeltaBUBI    string `json:"delta_bubi"`
	TotalUpdates string `json:"total_updates"`
	NationalDUI  string `json:"national_dui"`
	NationalBUBI string `json:"national_bubi"`
}

var printer = message.NewPrinter(language.English)

// FormatSummary renders KPIs the way the dashboard shows them: enrolment
// truncated with thousands separators, ratios to three places and deltas
// taken from the rounded mean.
func FormatSummary(s Summary) KPIText {
	dui := round3(float64(s.AvgDUI))
	bubi := round3(float64(s.AvgBUBI))

	return KPIText{
		AvgEnrolment: formatCount(float64(s.AvgEnrolment)),
		DUI:          formatRatio(dui),
		DeltaDUI:     formatDelta(round3(dui - float64(s.Benchmark.DUI))),
		BUBI:         formatRatio(bubi),
		DeltaBUBI:    formatDelta(round3(bubi - float64(s.Benchmark.BUBI))),
		TotalUpdates: printer.Sprintf("%d", s.TotalUpdates),
		NationalDUI:  formatRatio(float64(s.Benchmark.DUI)),
		NationalBUBI: formatRatio(float64(s.Benchmark.BUBI)),
	}
}

// FormatRatio renders a ratio to three places, "nan" when undefined.
func FormatRatio(f Float) string {
	return formatRatio(float64(f))
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

func formatCount(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return printer.Sprintf("%d", int64(f))
}

func formatRatio(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return fmt.Sprintf("%.3f", f)
}

func formatDelta(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if f == 0 {
		f = 0 // drop the sign of negative zero
	}
	return fmt.Sprintf("%+.3f", f)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
