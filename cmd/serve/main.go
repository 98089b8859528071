package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/anrid/lifecycle-stats/internal/config"
	"github.com/anrid/lifecycle-stats/internal/logger"
	"github.com/anrid/lifecycle-stats/internal/metrics"
	"github.com/anrid/lifecycle-stats/internal/server"
	"github.com/anrid/lifecycle-stats/pkg/stats"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New("error", "text").Error("config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	ds, err := stats.Default.Load(ctx, cfg.DataPath)
	if err != nil {
		log.Error("load dataset", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}
	took := time.Since(start)
	log.Info("dataset loaded", "path", cfg.DataPath, "records", ds.Len(), "regions", len(ds.Regions()), "took", took)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	m.ObserveLoad(ds.Len(), took)

	srv := server.NewHTTPServer(cfg.Addr, server.New(ds, log, m, reg).Router())

	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("stopped")
}
