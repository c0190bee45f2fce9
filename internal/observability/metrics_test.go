package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ObserveRender("portfolio", nil, time.Millisecond)
	m.ApiInflightInc()
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
}

func TestInitDisabled(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "")
	if m := Init(nil); m != nil {
		t.Fatalf("expected nil metrics when disabled")
	}
}

func TestWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/portfolios/:id", "200", 20*time.Millisecond)
	m.ObserveAPI("GET", "/api/portfolios/:id", "500", 20*time.Millisecond)
	m.ObserveRender("preview", errors.New("boom"), time.Millisecond)
	m.ObserveUpload(nil, 1024)
	m.IncReferenceCache("works", true)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`pf_api_requests_total{method="GET",route="/api/portfolios/:id",status="500"} 1.000000`,
		`pf_api_requests_error_total 1.000000`,
		`pf_render_total{source="preview",status="error"} 1.000000`,
		`pf_upload_bytes_total 1024.000000`,
		`pf_reference_cache_total{kind="works",result="hit"} 1.000000`,
		`le="+Inf"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestParseHeaders(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"a=1", 1},
		{"a=1, b=2", 2},
		{"bad,=x,c=", 0},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			if got := len(ParseHeaders(tc.raw)); got != tc.want {
				t.Fatalf("ParseHeaders(%q) len=%d want %d", tc.raw, got, tc.want)
			}
		})
	}
}
