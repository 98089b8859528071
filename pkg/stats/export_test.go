package stats_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anrid/lifecycle-stats/pkg/stats"
)

func TestWriteCSV(t *testing.T) {
	ds := uttarakhand(t)
	v := ds.Filter("Uttarakhand", ds.Bounds())

	var buf bytes.Buffer
	require.NoError(t, stats.WriteCSV(&buf, v))

	want := "date,state,total_enrolment,demographic_updates,biometric_updates,DUI,BUBI,state_clean\n" +
		"2024-01-01,uttarakhand ,100,10,5,0.1,0.05,Uttarakhand\n" +
		"2024-01-02,Uttarakhand,200,30,10,0.15,0.05,Uttarakhand\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVIsReproducible(t *testing.T) {
	ds := stats.NewDataset("test", []stats.Record{
		rec(t, "Jammu & Kashmir", "2024-01-01", 0, 3, 4, math.NaN(), math.NaN()),
		rec(t, "Jammu and Kashmir", "2024-01-02", 7, 1, 2, 1.0/7, 2.0/7),
	})
	v := ds.Filter("Jammu and Kashmir", ds.Bounds())

	var a, b bytes.Buffer
	require.NoError(t, stats.WriteCSV(&a, v))
	require.NoError(t, stats.WriteCSV(&b, v))
	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.Contains(t, a.String(), "2024-01-01,Jammu & Kashmir,0,3,4,,,Jammu and Kashmir\n")
}

func TestWriteCSVQuotesLabels(t *testing.T) {
	ds := stats.NewDataset("test", []stats.Record{
		rec(t, "Daman, Diu", "2024-01-01", 1, 0, 0, 0, 0),
	})
	var buf bytes.Buffer
	require.NoError(t, stats.WriteCSV(&buf, ds.Filter("Daman, Diu", ds.Bounds())))
	assert.Contains(t, buf.String(), `"Daman, Diu"`)
}

func TestExportFileName(t *testing.T) {
	ds := uttarakhand(t)
	v := ds.Filter("West Bengal", ds.ResolveInterval(date(t, "2024-01-01"), date(t, "2024-01-03")))
	assert.Equal(t, "filtered_West Bengal_2024-01-01_2024-01-03.csv", stats.ExportFileName(v, "csv"))
}
