// Package capgains computes realized capital gains and losses on security
// sales using the FIFO (first-in, first-out) cost basis method.
//
// The package replays a chronological trade history once, tracking one
// ordered queue of open acquisition lots per security. Each sale is matched
// against the oldest available lots, acquisition and disposal fees are
// apportioned proportionally over the matched slices, and each slice is
// classified as discount-eligible when it was held strictly more than twelve
// months. Results are aggregated per July-June tax year and per security.
//
// The engine is a pure function of its input: it performs no I/O, keeps no
// state between invocations, and two runs over the same trade sequence
// produce identical results.
package capgains
