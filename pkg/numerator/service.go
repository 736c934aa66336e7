// Package numerator provides human-readable document numbering.
// Counters live inside the ledger document, so numbers commit together
// with the document that consumed them.
package numerator

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "SO", "PO")
	Prefix string

	// IncludeYear adds year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// Counters maps a sequence key to the last number handed out.
type Counters map[string]int64

// Next increments the counter for cfg/period and returns the formatted number.
// counters must be non-nil.
func Next(counters Counters, cfg Config, period time.Time) string {
	key := BuildKey(cfg, period)
	counters[key]++
	return Format(cfg, period, counters[key])
}

// BuildKey creates the sequence key based on config and period.
func BuildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

// Format creates the final number string.
// Pattern: PREFIX-YEAR-XXXXX (e.g., SO-2026-00001)
func Format(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts numeric part from formatted number.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	i := strings.LastIndex(formatted, "-")
	if i < 0 || i == len(formatted)-1 {
		return -1
	}
	num, err := strconv.ParseInt(formatted[i+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
