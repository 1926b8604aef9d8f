package renderer

import (
	"fmt"

	"github.com/etnz/holdings"
)

// Transaction renders a transaction to a string.
func Transaction(tx holdings.Transaction) string {
	switch tx.Kind {
	case holdings.Buy:
		if !tx.HasPrice() {
			return fmt.Sprintf("Bought %s of %s", tx.Quantity, tx.Symbol)
		}
		return fmt.Sprintf("Bought %s of %s at %s", tx.Quantity, tx.Symbol, tx.Price)
	case holdings.SellFIFO:
		return fmt.Sprintf("Sold %s of %s (FIFO)", tx.Quantity, tx.Symbol)
	default:
		return tx.String()
	}
}
