package stats_test

import (
	"testing"
	"time"

	"github.com/anrid/lifecycle-stats/pkg/stats"
)

func date(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := time.Parse(stats.DateLayout, v)
	if err != nil {
		t.Fatalf("bad date %q: %v", v, err)
	}
	return d
}

func rec(t *testing.T, state, day string, total, demo, bio int64, dui, bubi float64) stats.Record {
	t.Helper()
	return stats.Record{
		Date:               date(t, day),
		State:              state,
		TotalEnrolment:     total,
		DemographicUpdates: demo,
		BiometricUpdates:   bio,
		DUI:                dui,
		BUBI:               bubi,
	}
}

// uttarakhand is the two-day sample dataset plus a neighbouring region.
func uttarakhand(t *testing.T) *stats.Dataset {
	t.Helper()
	return stats.NewDataset("test", []stats.Record{
		rec(t, "Uttarakhand", "2024-01-02", 200, 30, 10, 0.15, 0.05),
		rec(t, "West Bengal", "2024-01-01", 400, 20, 40, 0.05, 0.10),
		rec(t, "uttarakhand ", "2024-01-01", 100, 10, 5, 0.10, 0.05),
		rec(t, "WestBengal", "2024-01-03", 500, 50, 25, 0.10, 0.05),
	})
}

const sampleCSV = `date,state,total_enrolment,demographic_updates,biometric_updates,DUI,BUBI
2024-01-01,Uttarakhand,100,10,5,0.1,0.05
2024-01-02,Uttarakhand,200,30,10,0.15,0.05
2024-01-01,West  Bengal,400,20,40,0.05,0.1
2024-01-01,Jammu & Kashmir,0,3,4,,
2024-01-02,12,5,1,1,0.2,0.2
`
