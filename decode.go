package holdings

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// normalizeHeader turns "Open date", "Adj_Close" or "Qty." into "opendate", "adjclose", "qty".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", ".", "", "\ufeff", "").Replace(h)
}

// columns finds the index of the first matching header for each key.
type columns map[string]int

func newColumns(header []string, aliases map[string][]string) columns {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, exists := index[normalizeHeader(h)]; !exists {
			index[normalizeHeader(h)] = i
		}
	}
	c := make(columns)
	for key, names := range aliases {
		for _, name := range names {
			if i, ok := index[name]; ok {
				c[key] = i
				break
			}
		}
	}
	return c
}

// get returns the trimmed value of key in record, or "".
func (c columns) get(record []string, key string) string {
	i, ok := c[key]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

var transactionColumns = map[string][]string{
	"symbol":   {"symbol", "ticker"},
	"type":     {"type", "kind"},
	"date":     {"opendate", "date"},
	"quantity": {"qty", "quantity"},
	"price":    {"price", "costpershare", "cost"},
}

// DecodeTransactions decodes CSV transactions with a header row naming at
// least the Symbol, Type, Open date and Qty columns, and optionally a Price.
// Prices are in currency.
func DecodeTransactions(r io.Reader, currency string) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read transactions header: %w", err)
	}
	cols := newColumns(header, transactionColumns)
	for _, key := range []string{"symbol", "type", "date", "quantity"} {
		if _, ok := cols[key]; !ok {
			return nil, fmt.Errorf("transactions header %q has no %s column", header, key)
		}
	}

	var txs []Transaction
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read transactions: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue // Skip empty lines
		}
		tx, err := parseTransaction(line, currency,
			cols.get(record, "symbol"),
			cols.get(record, "type"),
			cols.get(record, "date"),
			cols.get(record, "quantity"),
			cols.get(record, "price"),
		)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return NewStore(txs...)
}

// DecodeTransactionsJSONL decodes transactions from a stream of JSONL data,
// one object per line with the fields symbol, type, date, quantity and an
// optional price.
func DecodeTransactionsJSONL(r io.Reader, currency string) (*Store, error) {
	scanner := bufio.NewScanner(r)
	var txs []Transaction
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue // Skip empty lines
		}
		var temp struct {
			Symbol   string      `json:"symbol"`
			Type     string      `json:"type"`
			Date     string      `json:"date"`
			Quantity json.Number `json:"quantity"`
			Price    json.Number `json:"price,omitempty"`
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, &MalformedTransactionError{Line: line, Field: "record", Value: string(lineBytes), Err: err}
		}
		tx, err := parseTransaction(line, currency, temp.Symbol, temp.Type, temp.Date, temp.Quantity.String(), temp.Price.String())
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read transactions: %w", err)
	}
	return NewStore(txs...)
}

// parseTransaction builds a transaction from its textual fields.
func parseTransaction(line int, currency, symbol, kind, day, quantity, price string) (Transaction, error) {
	malformed := func(field, value string, err error) (Transaction, error) {
		return Transaction{}, &MalformedTransactionError{Line: line, Field: field, Value: value, Err: err}
	}
	k, err := ParseKind(kind)
	if err != nil {
		return malformed("type", kind, err)
	}
	on, err := date.Parse(day)
	if err != nil {
		return malformed("date", day, err)
	}
	q, err := ParseQuantity(quantity)
	if err != nil {
		return malformed("quantity", quantity, err)
	}
	tx := Transaction{Symbol: symbol, Kind: k, Date: on, Quantity: q, Line: line}
	if price != "" && k == Buy {
		p, err := ParseMoney(price, currency)
		if err != nil {
			return malformed("price", price, err)
		}
		tx.Price = p
	}
	return tx.Validate()
}

// DecodePrices decodes adjusted close prices from CSV. Two layouts are
// supported, both with a header row:
//
//	Date,Symbol,Adj Close    one close per row
//	Date,AAPL,SPY            one row per day, one column per symbol
//
// Empty cells are missing closes.
func DecodePrices(r io.Reader, currency string) (*PriceTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read prices header: %w", err)
	}
	cols := newColumns(header, map[string][]string{
		"date":   {"date"},
		"symbol": {"symbol", "ticker"},
		"close":  {"adjclose", "close"},
	})
	dateCol, ok := cols["date"]
	if !ok {
		return nil, fmt.Errorf("prices header %q has no date column", header)
	}
	_, long := cols["symbol"]
	if _, hasClose := cols["close"]; long && !hasClose {
		return nil, fmt.Errorf("prices header %q has no close column", header)
	}

	table := NewPriceTable(currency)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read prices: %w", err)
		}
		line, _ := reader.FieldPos(0)
		day, err := date.Parse(cols.get(record, "date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		set := func(symbol, value string) error {
			value = strings.TrimSpace(value)
			if symbol == "" || value == "" {
				return nil
			}
			v, err := parseDecimal(value)
			if err != nil {
				return fmt.Errorf("line %d: invalid close %q for %s: %w", line, value, symbol, err)
			}
			table.Set(symbol, day, v)
			return nil
		}
		if long {
			if err := set(cols.get(record, "symbol"), cols.get(record, "close")); err != nil {
				return nil, err
			}
			continue
		}
		for i, symbol := range header {
			if i == dateCol || i >= len(record) {
				continue
			}
			if err := set(strings.TrimSpace(symbol), record[i]); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}

// DecodeCalendar decodes a trading calendar, one date per line. Blank lines
// and lines starting with '#' are ignored.
func DecodeCalendar(r io.Reader) (Calendar, error) {
	scanner := bufio.NewScanner(r)
	var days []date.Date
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		day, err := date.Parse(text)
		if err != nil {
			return Calendar{}, fmt.Errorf("line %d: %w", line, err)
		}
		days = append(days, day)
	}
	if err := scanner.Err(); err != nil {
		return Calendar{}, fmt.Errorf("could not read calendar: %w", err)
	}
	return NewCalendar(days...)
}

// decimal values are written as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
