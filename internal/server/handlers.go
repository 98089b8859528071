package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anrid/lifecycle-stats/internal/metrics"
	"github.com/anrid/lifecycle-stats/pkg/chart"
	"github.com/anrid/lifecycle-stats/pkg/stats"
)

type dashboardResponse struct {
	*stats.Report
	KPI stats.KPIText `json:"kpi"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": s.ds.Len()})
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"regions": s.ds.Regions()})
}

func (s *Server) handleBounds(w http.ResponseWriter, _ *http.Request) {
	b := s.ds.Bounds()
	writeJSON(w, http.StatusOK, map[string]string{
		"min": b.Start.Format(stats.DateLayout),
		"max": b.End.Format(stats.DateLayout),
	})
}

func (s *Server) handleBenchmark(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ds.Benchmark())
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ds.Comparison(r.URL.Query().Get("region")))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{Report: report, KPI: stats.FormatSummary(report.Summary)})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, chi.URLParam(r, "name"), report); err != nil {
		if errors.Is(err, chart.ErrUnknownChart) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.log.Error("render chart", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "csv", "text/csv; charset=utf-8", stats.WriteCSV)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", stats.WriteXLSX)
}

type exporter func(w io.Writer, v stats.View) error

func (s *Server) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write exporter) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v := s.ds.Filter(q.Region, s.ds.ResolveInterval(q.Start, q.End))
	if v.Empty() {
		writeError(w, http.StatusNotFound, stats.ErrNoData.Error())
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, v); err != nil {
		s.log.Error("export", "format", ext, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.metrics.IncrementExports(ext)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": stats.ExportFileName(v, ext),
	}))
	_, _ = w.Write(buf.Bytes())
}

// report runs a dashboard pass for the request and writes the error
// response itself when there is nothing to show.
func (s *Server) report(w http.ResponseWriter, r *http.Request) (*stats.Report, bool) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	start := time.Now()
	report, err := s.ds.Dashboard(q)
	took := time.Since(start)

	switch {
	case err == nil:
		s.metrics.ObserveRequest(metrics.OutcomeOK, took)
		return report, true
	case stats.IsNoData(err):
		s.metrics.ObserveRequest(metrics.OutcomeNoData, took)
		s.log.Info("empty selection", "region", q.Region, "error", err)
		writeError(w, http.StatusNotFound, stats.ErrNoData.Error())
	default:
		s.metrics.ObserveRequest(metrics.OutcomeError, took)
		s.log.Error("dashboard", "region", q.Region, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
	return nil, false
}

func parseQuery(r *http.Request) (stats.Query, error) {
	values := r.URL.Query()
	q := stats.Query{Region: strings.TrimSpace(values.Get("region"))}
	if q.Region == "" {
		return q, errors.New("region is required")
	}

	var err error
	if q.Start, err = parseDay(values.Get("start")); err != nil {
		return q, fmt.Errorf("start: %w", err)
	}
	if q.End, err = parseDay(values.Get("end")); err != nil {
		return q, fmt.Errorf("end: %w", err)
	}
	return q, nil
}

func parseDay(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(stats.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", v)
	}
	return t, nil
}
