// Package sheets wraps the Google Sheets API and implements the range
// and conditional-format rule engine behind the sheets tools.
//
// The engine translates A1-notation range expressions into zero-based,
// half-open GridRanges resolved against a specific sheet, and maintains
// each sheet's ordered conditional-format rule list through positional
// insert, update and delete operations. Rule position is evaluation
// priority, so every mutation is expressed as an index-addressed edit.
//
// All parsing, merging and building is pure and validated in memory
// before any remote call; the rule list is re-fetched fresh at the start
// of every mutating operation and the document itself is the only state.
package sheets
