// Package simuart provides an in-memory hal.Channel for tests and demos.
//
// Bytes fed into the channel come back out of Receive, transmitted bytes are
// captured for inspection, and an optional per-byte wire time keeps the
// transmit-busy flag raised long enough to exercise drain logic. Faults can
// be injected on both directions.
package simuart
