package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/anrid/lifecycle-stats/internal/metrics"
	"github.com/anrid/lifecycle-stats/pkg/stats"
)

type ServerSuite struct {
	suite.Suite
	ds      *stats.Dataset
	metrics *metrics.Metrics
	router  http.Handler
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	day := func(v string) time.Time {
		d, err := time.Parse(stats.DateLayout, v)
		s.Require().NoError(err)
		return d
	}
	s.ds = stats.NewDataset("test", []stats.Record{
		{Date: day("2024-01-01"), State: "Uttarakhand", TotalEnrolment: 100, DemographicUpdates: 10, BiometricUpdates: 5, DUI: 0.10, BUBI: 0.05},
		{Date: day("2024-01-02"), State: "Uttarakhand", TotalEnrolment: 200, DemographicUpdates: 30, BiometricUpdates: 10, DUI: 0.15, BUBI: 0.05},
		{Date: day("2024-01-01"), State: "West & Bengal", TotalEnrolment: 0, DemographicUpdates: 1, BiometricUpdates: 1, DUI: 0.2, BUBI: 0.1},
		{Date: day("2024-01-03"), State: "99", TotalEnrolment: 1, DemographicUpdates: 1, BiometricUpdates: 1, DUI: 1, BUBI: 1},
	})

	reg := prometheus.NewRegistry()
	s.metrics = metrics.New(reg)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = New(s.ds, log, s.metrics, reg).Router()
}

func (s *ServerSuite) get(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (s *ServerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(v))
}

func (s *ServerSuite) TestHealth() {
	rec := s.get("/healthz")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerSuite) TestRegionsAndBounds() {
	var regions struct {
		Regions []string `json:"regions"`
	}
	rec := s.get("/api/regions")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &regions)
	s.Equal([]string{"Uttarakhand", "West and Bengal"}, regions.Regions)

	var bounds map[string]string
	rec = s.get("/api/bounds")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &bounds)
	s.Equal("2024-01-01", bounds["min"])
	s.Equal("2024-01-03", bounds["max"])
}

func (s *ServerSuite) TestDashboard() {
	rec := s.get("/api/dashboard?region=Uttarakhand&start=2024-01-01&end=2024-01-02")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Region  string `json:"region"`
		Summary struct {
			AvgEnrolment float64 `json:"avg_enrolment"`
			AvgDUI       float64 `json:"avg_dui"`
			TotalUpdates int64   `json:"total_updates"`
		} `json:"summary"`
		Audit struct {
			ComputedDUI *float64 `json:"computed_dui"`
		} `json:"audit"`
		KPI stats.KPIText `json:"kpi"`
	}
	s.decode(rec, &body)
	s.Equal("Uttarakhand", body.Region)
	s.InDelta(150, body.Summary.AvgEnrolment, 1e-9)
	s.InDelta(0.125, body.Summary.AvgDUI, 1e-9)
	s.Equal(int64(55), body.Summary.TotalUpdates)
	s.Require().NotNil(body.Audit.ComputedDUI)
	s.InDelta(0.15, *body.Audit.ComputedDUI, 1e-9)
	s.Equal("150", body.KPI.AvgEnrolment)
	s.Equal("55", body.KPI.TotalUpdates)

	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Requests.WithLabelValues(metrics.OutcomeOK)))
}

func (s *ServerSuite) TestDashboardZeroEnrolmentIsNull() {
	rec := s.get("/api/dashboard?region=West%20and%20Bengal")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"computed_dui":null`)
}

func (s *ServerSuite) TestDashboardNoData() {
	rec := s.get("/api/dashboard?region=Uttarakhand&start=2024-01-03&end=2024-01-03")
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"no data for these filters"}`, rec.Body.String())
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Requests.WithLabelValues(metrics.OutcomeNoData)))

	// later requests are unaffected
	rec = s.get("/api/dashboard?region=Uttarakhand")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerSuite) TestBadRequests() {
	for _, target := range []string{
		"/api/dashboard",
		"/api/dashboard?region=Uttarakhand&start=01/02/2024",
		"/api/dashboard?region=Uttarakhand&end=tomorrow",
		"/api/export.csv",
	} {
		rec := s.get(target)
		s.Equal(http.StatusBadRequest, rec.Code, target)
	}
}

func (s *ServerSuite) TestExportCSV() {
	rec := s.get("/api/export.csv?region=Uttarakhand")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("attachment; filename=filtered_Uttarakhand_2024-01-01_2024-01-03.csv", rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	s.Len(lines, 3)
	s.True(strings.HasPrefix(lines[1], "2024-01-01,Uttarakhand,100,10,5,0.1,0.05"))

	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Exports.WithLabelValues("csv")))

	rec = s.get("/api/export.csv?region=Goa")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestExportFileNameEncoding() {
	ds := stats.NewDataset("test", []stats.Record{
		{Date: s.ds.Bounds().Start, State: "Tamil Nāḍu", TotalEnrolment: 1, DUI: 0.1, BUBI: 0.1},
	})
	reg := prometheus.NewRegistry()
	router := New(ds, slog.New(slog.NewTextHandler(io.Discard, nil)), metrics.New(reg), reg).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export.csv?region=Tamil%20N%C4%81%E1%B8%8Du", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	header := rec.Header().Get("Content-Disposition")
	s.Contains(header, "filename*=utf-8''")
	s.NotContains(header, `\u`)

	disposition, params, err := mime.ParseMediaType(header)
	s.Require().NoError(err)
	s.Equal("attachment", disposition)
	s.Equal("filtered_Tamil Nāḍu_2024-01-01_2024-01-01.csv", params["filename"])
}

func (s *ServerSuite) TestExportXLSX() {
	rec := s.get("/api/export.xlsx?region=Uttarakhand")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.True(bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func (s *ServerSuite) TestComparisonAndBenchmark() {
	rec := s.get("/api/comparison?region=Uttarakhand")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"selected":{"region":"Uttarakhand"`)

	rec = s.get("/api/benchmark")
	s.Require().Equal(http.StatusOK, rec.Code)
	var b map[string]float64
	s.decode(rec, &b)
	s.InDelta(float64(s.ds.Benchmark().DUI), b["dui"], 1e-12)
}

func (s *ServerSuite) TestCharts() {
	rec := s.get("/api/charts/ratios.png?region=Uttarakhand")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("image/png", rec.Header().Get("Content-Type"))

	rec = s.get("/api/charts/pie.png?region=Uttarakhand")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestMetricsEndpoint() {
	s.get("/api/dashboard?region=Uttarakhand")
	rec := s.get("/metrics")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "lifecycle_dashboard_requests_total")
}
