// Package ledgerval implements a plain-text double-entry ledger processor.
//
// The package ingests normalized ledger entries (transaction legs, price
// observations, benchmark legs) and computes balances, running totals,
// fair-value valuations and transaction validity. Ingestion of broker or
// bank specific formats and presentation of the resulting tables are the
// responsibility of external collaborators; this package only consumes
// entries and returns tabular reports.
//
// All amounts use exact decimal arithmetic (github.com/shopspring/decimal):
// comparisons to zero and sums are exact, never floating point.
package ledgerval
