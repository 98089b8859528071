package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/anrid/lifecycle-stats/internal/config"
	"github.com/anrid/lifecycle-stats/internal/logger"
	"github.com/anrid/lifecycle-stats/pkg/chart"
	"github.com/anrid/lifecycle-stats/pkg/stats"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	dataPath := flag.String("data", "", "processed dataset to load (default: config data_path)")
	region := flag.String("region", "", "region to report on; empty lists the regions")
	start := flag.String("start", "", "first day, YYYY-MM-DD (default: dataset start)")
	end := flag.String("end", "", "last day, YYYY-MM-DD (default: dataset end)")
	export := flag.String("export", "", "write the filtered records to this .csv or .xlsx file")
	charts := flag.String("charts", "", "write PNG charts into this directory")
	dump := flag.Bool("dump", false, "dump the full report")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New("error", "text").Error("config", "error", err)
		os.Exit(1)
	}
	cfg = cfg.WithDataPath(*dataPath)
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ds, err := stats.Default.Load(context.Background(), cfg.DataPath)
	if err != nil {
		log.Error("load dataset", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}

	if *region == "" {
		if err := ds.Info(os.Stdout); err != nil {
			log.Error("info", "error", err)
			os.Exit(1)
		}
		fmt.Println()
		for _, r := range ds.Regions() {
			fmt.Println(r)
		}
		return
	}

	q := stats.Query{Region: *region}
	if q.Start, err = parseDay(*start); err != nil {
		log.Error("bad -start", "error", err)
		os.Exit(2)
	}
	if q.End, err = parseDay(*end); err != nil {
		log.Error("bad -end", "error", err)
		os.Exit(2)
	}

	report, err := ds.Dashboard(q)
	if stats.IsNoData(err) {
		fmt.Println("No data for the selected filters")
		return
	}
	if err != nil {
		log.Error("dashboard", "error", err)
		os.Exit(1)
	}

	printReport(os.Stdout, report)
	printComparison(os.Stdout, report.Comparison)

	if *dump {
		spew.Dump(report)
	}

	if *export != "" {
		if err := exportView(*export, report.View); err != nil {
			log.Error("export", "path", *export, "error", err)
			os.Exit(1)
		}
		log.Info("exported", "path", *export, "records", report.View.Len())
	}

	if *charts != "" {
		if err := renderCharts(*charts, report); err != nil {
			log.Error("charts", "dir", *charts, "error", err)
			os.Exit(1)
		}
		log.Info("charts written", "dir", *charts)
	}
}

func parseDay(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(stats.DateLayout, v)
}

func exportView(path string, v stats.View) error {
	var write func(f *os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = func(f *os.File) error { return stats.WriteCSV(f, v) }
	case ".xlsx":
		write = func(f *os.File) error { return stats.WriteXLSX(f, v) }
	default:
		return fmt.Errorf("%w: %s", stats.ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderCharts(dir string, r *stats.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range []string{chart.Counts, chart.Ratios, chart.Comparison} {
		path := filepath.Join(dir, name+".png")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = chart.Render(f, name, r)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
