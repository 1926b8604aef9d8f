// Package holdings reconstructs the daily holdings of a portfolio from its
// transaction history and compares their performance against a benchmark.
//
// The core functionalities include:
//   - Transaction Store: typed and validated buy and FIFO-sell records, kept in
//     replay order (by date, then by input order).
//   - FIFO Matching: every sell consumes the oldest open lots of its symbol
//     first, either completely or not at all.
//   - Position Reconstruction: the lots open at any date, obtained by
//     replaying all the transactions up to that date.
//   - Daily Fill: the holdings of every trading day of a calendar, one block
//     per day, with the weighted average cost of the open lots.
//   - Valuation: market value, unrealized gains and returns of every holding,
//     compared with the same dollar exposure invested in a benchmark.
//
// The package never fetches data: the trading calendar and the adjusted close
// prices are supplied fully materialized by the caller.
package holdings
