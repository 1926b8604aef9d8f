package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/holdings"
	md "github.com/nao1215/markdown"
)

// PerformanceMarkdown renders a valuation: the summary of its last day, the
// holdings of that day compared with the benchmark, and the daily totals.
func PerformanceMarkdown(v *holdings.Valuation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Performance vs %s", v.Benchmark))

	total, ok := v.Latest()
	if !ok {
		doc.PlainText("No holdings to value.")
		return doc.String()
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold(fmt.Sprintf("Market Value on %s", total.Date)), md.Bold(total.MarketValue.String())},
		Rows: [][]string{
			{"Cost Basis", total.CostBasis.String()},
			{"Unrealized Gain", total.UnrealizedGain.SignedString()},
			{"Exposure", total.Exposure.String()},
			{"Stock Gain", total.StockGain.SignedString()},
			{fmt.Sprintf("%s Gain", v.Benchmark), total.BenchmarkGain.SignedString()},
			{md.Bold("Excess Gain"), md.Bold(total.ExcessGain().SignedString())},
		},
	})

	if metrics := v.On(total.Date); len(metrics) > 0 {
		doc.H2("Holdings")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Symbol", "Quantity", "Close", "Market Value", "Unrealized", "Since", "Return", v.Benchmark, "Excess Gain"},
		}
		for _, m := range metrics {
			table.Rows = append(table.Rows, []string{
				m.Symbol,
				m.Quantity.String(),
				m.Close.String(),
				m.MarketValue.String(),
				m.UnrealizedGain.SignedString(),
				m.Reference.String(),
				holdings.NewPercent(m.TickerReturn).SignedString(),
				holdings.NewPercent(m.BenchmarkReturn).SignedString(),
				m.ExcessGain().SignedString(),
			})
		}
		doc.Table(table)
	}

	doc.H2("Daily Totals")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Market Value", "Return", v.Benchmark, "Excess Gain"},
	}
	for _, t := range v.Totals {
		mv := t.MarketValue.String()
		if t.Excluded > 0 {
			mv += fmt.Sprintf(" (%d excluded)", t.Excluded)
		}
		table.Rows = append(table.Rows, []string{
			t.Date.String(),
			mv,
			holdings.NewPercent(t.StockReturn()).SignedString(),
			holdings.NewPercent(t.BenchmarkReturn()).SignedString(),
			t.ExcessGain().SignedString(),
		})
	}
	doc.Table(table)

	if len(v.Gaps) > 0 {
		doc.H2("Missing Prices")
		var items []string
		for _, g := range v.Gaps {
			items = append(items, g.Error())
		}
		doc.BulletList(items...)
	}

	return doc.String()
}
