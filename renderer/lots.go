package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
	md "github.com/nao1215/markdown"
)

// LotsMarkdown renders the open lots of each symbol, oldest first.
func LotsMarkdown(asOf date.Date, p holdings.Positions) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Open Lots on %s", asOf))

	empty := true
	for symbol, lots := range p.Open() {
		empty = false
		doc.H2(symbol)
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Opened", "Bought", "Remaining", "Cost/Share", "Cost"},
		}
		for _, lot := range lots {
			if !lot.IsOpen() {
				continue
			}
			table.Rows = append(table.Rows, []string{
				lot.Opened.String(),
				lot.Original.String(),
				lot.Remaining.String(),
				lot.CostPerShare.String(),
				lot.Cost().String(),
			})
		}
		table.Rows = append(table.Rows, []string{
			md.Bold("Total"),
			"",
			md.Bold(lots.Open().String()),
			md.Bold(lots.AverageCost().String()),
			md.Bold(lots.CostBasis().String()),
		})
		doc.Table(table)
	}
	if empty {
		doc.PlainText("No open lots.")
	}

	return doc.String()
}
