package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{"empty", "", time.Second},
		{"go duration", "750ms", 750 * time.Millisecond},
		{"bare millis", "400", 400 * time.Millisecond},
		{"garbage", "soon", time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PORTFOLIO_TEST_DURATION", tc.raw)
			if got := Duration("PORTFOLIO_TEST_DURATION", time.Second); got != tc.want {
				t.Fatalf("Duration: want=%v got=%v", tc.want, got)
			}
		})
	}
}

func TestScalars(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_INT", "12")
	t.Setenv("PORTFOLIO_TEST_BOOL", "off")
	if got := Int("PORTFOLIO_TEST_INT", 3); got != 12 {
		t.Fatalf("Int: want=12 got=%d", got)
	}
	if got := Bool("PORTFOLIO_TEST_BOOL", true); got {
		t.Fatalf("Bool: want=false got=true")
	}
	t.Setenv("PORTFOLIO_TEST_FLOAT", "0.25")
	if got := Float("PORTFOLIO_TEST_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float: want=0.25 got=%v", got)
	}
	if got := String("PORTFOLIO_TEST_MISSING", "x"); got != "x" {
		t.Fatalf("String: want=x got=%q", got)
	}
}
