package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/holdings"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders the daily holdings of a fill, one row per holding
// and per trading day.
func HoldingsMarkdown(f *holdings.Fill) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Daily Holdings from %s to %s", f.Window.From, f.Window.To))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Symbol", "Quantity", "Cost/Share"},
	}
	for _, b := range f.Blocks {
		if len(b.Holdings) == 0 {
			table.Rows = append(table.Rows, []string{b.Date.String(), "-", "", ""})
			continue
		}
		for _, h := range b.Holdings {
			table.Rows = append(table.Rows, []string{
				h.Date.String(),
				h.Symbol,
				h.Quantity.String(),
				h.CostPerShare.String(),
			})
		}
	}
	doc.Table(table)

	if len(f.Disposals) > 0 {
		doc.H2("Sales")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Date", "Symbol", "Quantity", "Cost"},
		}
		for _, d := range f.Disposals {
			table.Rows = append(table.Rows, []string{d.Date.String(), d.Symbol, d.Quantity.String(), d.Cost.String()})
		}
		doc.Table(table)
	}

	if len(f.Adjustments) > 0 {
		doc.H2("Shifted Transactions")
		var items []string
		for _, a := range f.Adjustments {
			items = append(items, fmt.Sprintf("%s: moved from %s to %s", Transaction(a.Transaction), a.From, a.To))
		}
		doc.OrderedList(items...)
	}

	return doc.String()
}
