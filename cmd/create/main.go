package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anrid/lifecycle-stats/internal/config"
	"github.com/anrid/lifecycle-stats/internal/logger"
	"github.com/anrid/lifecycle-stats/pkg/stats"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	src := flag.String("src", "", "raw extract to import: a local csv/xlsx/xls path or an http(s) URL")
	out := flag.String("out", "", "where to write the processed CSV (default: config data_path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New("error", "text").Error("config", "error", err)
		os.Exit(1)
	}
	cfg = cfg.WithDataPath(*out)
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if *src == "" {
		fmt.Fprintln(os.Stderr, "usage: create -src <file or URL> [-out path]")
		os.Exit(2)
	}

	f, err := open(*src)
	if err != nil {
		log.Error("read source", "src", *src, "error", err)
		os.Exit(1)
	}

	ds, err := stats.Load(f)
	if err != nil {
		log.Error("load source", "src", *src, "error", err)
		os.Exit(1)
	}

	if err := save(cfg.DataPath, ds); err != nil {
		log.Error("write dataset", "out", cfg.DataPath, "error", err)
		os.Exit(1)
	}
	log.Info("dataset written", "out", cfg.DataPath, "records", ds.Len())

	if err := ds.Info(os.Stdout); err != nil {
		log.Error("info", "error", err)
		os.Exit(1)
	}
}

func open(src string) (*stats.File, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return stats.Fetch(ctx, http.DefaultClient, src)
	}
	return stats.ReadFile(src)
}

// save writes every record of ds, in date order, as the processed CSV the
// other commands load.
func save(path string, ds *stats.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	w, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := stats.WriteCSV(w, ds.All()); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
