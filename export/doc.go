// Package export persists downloaded telemetry as tables.
//
// Columns from a download are written either to a SQLite table, one row per
// datapoint, or as CSV with a header line. Field names become column names
// in download order.
package export
