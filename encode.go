package holdings

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON writes a metric with a stable field order.
func (m Metric) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", m.Date).
		Append("symbol", m.Symbol).
		Append("quantity", m.Quantity).
		Append("close", m.Close).
		Append("costPerShare", m.CostPerShare).
		Append("marketValue", m.MarketValue).
		Append("costBasis", m.CostBasis).
		Append("unrealizedGain", m.UnrealizedGain).
		Append("reference", m.Reference).
		Append("exposure", m.Exposure).
		Append("tickerReturn", m.TickerReturn).
		Append("benchmarkReturn", m.BenchmarkReturn).
		Append("stockGain", m.StockGain).
		Append("benchmarkGain", m.BenchmarkGain).
		Append("excessGain", m.ExcessGain())
	return w.MarshalJSON()
}

// MarshalJSON writes a snapshot with a stable field order.
func (s DailyHoldingSnapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", s.Date).
		Append("symbol", s.Symbol).
		Append("quantity", s.Quantity).
		Append("costPerShare", s.CostPerShare)
	return w.MarshalJSON()
}

// EncodeMetrics writes the metrics of a valuation as JSONL, one metric per
// line in (date, symbol) order.
func EncodeMetrics(w io.Writer, v *Valuation) error {
	return encodeLines(w, v.Metrics)
}

// EncodeSnapshots writes the daily holdings of a fill as JSONL, one snapshot
// per line in (date, symbol) order.
func EncodeSnapshots(w io.Writer, f *Fill) error {
	return encodeLines(w, f.Snapshots())
}

func encodeLines[T any](w io.Writer, items []T) error {
	out := bufio.NewWriter(w)
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("could not encode %v: %w", item, err)
		}
		out.Write(b)
		out.WriteByte('\n')
	}
	return out.Flush()
}
