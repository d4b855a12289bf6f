// Package charging contains the charging-session aggregation engine:
// normalization of raw history records, home/away summaries, date-window
// partitioning and month-over-month trend derivation. The package is pure:
// no I/O, no clock access, no environment reads.
package charging
