package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/anrid/lifecycle-stats/pkg/stats"
)

func printReport(w io.Writer, r *stats.Report) {
	kpi := stats.FormatSummary(r.Summary)

	fmt.Fprintf(w, "\n%s  %s .. %s  (%d records)\n\n", r.Region, r.Start, r.End, r.Summary.Records)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value", "vs National"})
	table.Append([]string{"Avg Daily Enrolment", kpi.AvgEnrolment, ""})
	table.Append([]string{"Avg DUI", kpi.DUI, kpi.DeltaDUI})
	table.Append([]string{"Avg BUBI", kpi.BUBI, kpi.DeltaBUBI})
	table.Append([]string{"Total Updates", kpi.TotalUpdates, ""})
	table.Append([]string{"National DUI", kpi.NationalDUI, ""})
	table.Append([]string{"National BUBI", kpi.NationalBUBI, ""})
	table.Render()

	a := r.Audit
	fmt.Fprintf(w, "\nLatest record (%s)\n\n", a.Date.Format(stats.DateLayout))

	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Enrolment", "Demographic", "Biometric", "DUI", "Computed DUI", "BUBI", "Computed BUBI"})
	table.Append([]string{
		stats.FormatCount(a.TotalEnrolment),
		stats.FormatCount(a.DemographicUpdates),
		stats.FormatCount(a.BiometricUpdates),
		stats.FormatRatio(a.ReportedDUI),
		stats.FormatRatio(a.ComputedDUI),
		stats.FormatRatio(a.ReportedBUBI),
		stats.FormatRatio(a.ComputedBUBI),
	})
	table.Render()
}

func printComparison(w io.Writer, c stats.Comparison) {
	fmt.Fprintf(w, "\nAll regions (national DUI %s, BUBI %s)\n\n",
		stats.FormatRatio(c.Benchmark.DUI), stats.FormatRatio(c.Benchmark.BUBI))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "Region", "Avg DUI", "Avg BUBI", "Records"})
	for _, ra := range c.Regions {
		mark := ""
		if ra.Selected {
			mark = "*"
		}
		table.Append([]string{
			mark,
			ra.Region,
			stats.FormatRatio(ra.DUI),
			stats.FormatRatio(ra.BUBI),
			fmt.Sprintf("%d", ra.Records),
		})
	}
	table.Render()
}
