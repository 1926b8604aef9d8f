package holdings

import (
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/holdings/date"
)

// Store holds validated transactions in replay order.
//
// The replay order is chronological, and transactions on the same day keep
// their input order. FIFO matching depends on this order, so it is enforced
// here rather than expected from the input.
type Store struct {
	txs []Transaction
}

// NewStore validates the transactions and returns a store. It fails on the
// first malformed transaction.
func NewStore(txs ...Transaction) (*Store, error) {
	s := &Store{txs: make([]Transaction, 0, len(txs))}
	if err := s.Append(txs...); err != nil {
		return nil, err
	}
	return s, nil
}

// Append validates and appends transactions, they are placed after any
// existing transaction of the same day.
//
// All the priced transactions of a symbol must share the same currency.
// Nothing is appended on error.
func (s *Store) Append(txs ...Transaction) error {
	currencies := make(map[string]string)
	for _, tx := range s.txs {
		if c := tx.Price.Currency(); c != "" {
			currencies[tx.Symbol] = c
		}
	}
	valid := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		v, err := tx.Validate()
		if err != nil {
			return err
		}
		if c := v.Price.Currency(); c != "" {
			if prev, ok := currencies[v.Symbol]; ok && prev != c {
				return &MalformedTransactionError{
					Line:  v.Line,
					Field: "price",
					Value: v.Price.Decimal().String(),
					Err:   fmt.Errorf("%s is priced in %s, earlier %s transactions in %s", v, c, v.Symbol, prev),
				}
			}
			currencies[v.Symbol] = c
		}
		v.seq = len(s.txs) + len(valid)
		valid = append(valid, v)
	}
	s.txs = append(s.txs, valid...)
	slices.SortStableFunc(s.txs, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.seq - b.seq
	})
	return nil
}

// Len returns the number of transactions in the store.
func (s *Store) Len() int { return len(s.txs) }

// All returns an iterator over all the transactions in replay order.
func (s *Store) All() iter.Seq[Transaction] {
	return s.filter(func(Transaction) bool { return true })
}

// Until returns an iterator over the transactions dated on or before day.
func (s *Store) Until(day date.Date) iter.Seq[Transaction] {
	return s.filter(func(tx Transaction) bool { return !tx.Date.After(day) })
}

// Between returns an iterator over the transactions dated within r.
func (s *Store) Between(r date.Range) iter.Seq[Transaction] {
	return s.filter(func(tx Transaction) bool { return r.Contains(tx.Date) })
}

func (s *Store) filter(accept func(Transaction) bool) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range s.txs {
			if !accept(tx) {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Symbols returns the sorted list of symbols traded in the store.
func (s *Store) Symbols() []string {
	var symbols []string
	for _, tx := range s.txs {
		if !slices.Contains(symbols, tx.Symbol) {
			symbols = append(symbols, tx.Symbol)
		}
	}
	slices.Sort(symbols)
	return symbols
}

// Range returns the dates of the first and the last transactions.
func (s *Store) Range() date.Range {
	if len(s.txs) == 0 {
		return date.Range{}
	}
	return date.Range{From: s.txs[0].Date, To: s.txs[len(s.txs)-1].Date}
}

// ResolveCosts returns a copy of the store where every buy without a price
// is priced at the close of its symbol on the buy date, or the latest close
// before it.
func (s *Store) ResolveCosts(prices *PriceTable) (*Store, error) {
	resolved := &Store{txs: slices.Clone(s.txs)}
	for i, tx := range resolved.txs {
		if cur := tx.Price.Currency(); cur != "" && cur != prices.Currency() {
			return nil, &MalformedTransactionError{
				Line:  tx.Line,
				Field: "price",
				Value: tx.Price.Decimal().String(),
				Err:   fmt.Errorf("%s is priced in %s, prices are in %s", tx, cur, prices.Currency()),
			}
		}
		if tx.Kind != Buy || tx.HasPrice() {
			continue
		}
		price, ok := prices.CloseAsOf(tx.Symbol, tx.Date)
		if !ok || !price.IsPositive() {
			return nil, &MalformedTransactionError{
				Line:  tx.Line,
				Field: "price",
				Value: "",
				Err:   fmt.Errorf("no cost for %s and no close for %s on or before %s", tx, tx.Symbol, tx.Date),
			}
		}
		resolved.txs[i].Price = price
	}
	return resolved, nil
}
