package holdings

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestEncodeMetrics(t *testing.T) {
	cal := newTestCalendar(t, "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")
	report, err := Analyze(scenarioStore(t), cal, scenarioPrices(), Options{Benchmark: "SPY"})
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeMetrics(&buf, report.Valuation); err != nil {
		t.Fatalf("EncodeMetrics() failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("EncodeMetrics() wrote %d lines, want 4:\n%s", len(lines), buf.String())
	}

	if !strings.HasPrefix(lines[3], `{"date":"2024-01-05","symbol":"AAPL","quantity":6,"close":105,`) {
		t.Errorf("EncodeMetrics() last line = %s", lines[3])
	}
	var last struct {
		MarketValue    float64 `json:"marketValue"`
		UnrealizedGain float64 `json:"unrealizedGain"`
		TickerReturn   float64 `json:"tickerReturn"`
	}
	if err := json.Unmarshal([]byte(lines[3]), &last); err != nil {
		t.Fatalf("invalid JSON line %s: %v", lines[3], err)
	}
	if last.MarketValue != 630 || last.UnrealizedGain != 30 || last.TickerReturn != 0.05 {
		t.Errorf("EncodeMetrics() last line = %+v, want 630, 30, 0.05", last)
	}
}

func TestEncodeSnapshots(t *testing.T) {
	cal := newTestCalendar(t, "2024-01-02", "2024-01-03")
	fill, err := FillDaily(scenarioStore(t), cal, ShiftForward)
	if err != nil {
		t.Fatalf("FillDaily() failed: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeSnapshots(&buf, fill); err != nil {
		t.Fatalf("EncodeSnapshots() failed: %v", err)
	}
	want := `{"date":"2024-01-02","symbol":"AAPL","quantity":10,"costPerShare":100}
{"date":"2024-01-03","symbol":"AAPL","quantity":10,"costPerShare":100}
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeSnapshots() =\n%s\nwant\n%s", got, want)
	}
}
