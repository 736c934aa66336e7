package numerator

import (
	"testing"
	"time"
)

func TestNext_Sequential(t *testing.T) {
	counters := Counters{}
	cfg := DefaultConfig("SO")
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := Next(counters, cfg, period); got != "SO-2026-00001" {
		t.Errorf("expected SO-2026-00001, got %s", got)
	}
	if got := Next(counters, cfg, period); got != "SO-2026-00002" {
		t.Errorf("expected SO-2026-00002, got %s", got)
	}
	if counters["SO_2026"] != 2 {
		t.Errorf("expected counter 2, got %d", counters["SO_2026"])
	}
}

func TestNext_ResetsPerYear(t *testing.T) {
	counters := Counters{}
	cfg := DefaultConfig("PO")

	Next(counters, cfg, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	got := Next(counters, cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if got != "PO-2026-00001" {
		t.Errorf("expected PO-2026-00001, got %s", got)
	}
}

func TestNext_PrefixesAreIndependent(t *testing.T) {
	counters := Counters{}
	period := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	Next(counters, DefaultConfig("SO"), period)
	Next(counters, DefaultConfig("SO"), period)
	if got := Next(counters, DefaultConfig("PO"), period); got != "PO-2026-00001" {
		t.Errorf("expected PO-2026-00001, got %s", got)
	}
}

func TestFormat_WithoutYear(t *testing.T) {
	cfg := Config{Prefix: "W", PadWidth: 3}
	if got := Format(cfg, time.Now(), 7); got != "W-007" {
		t.Errorf("expected W-007, got %s", got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := map[string]int64{
		"SO-2026-00042": 42,
		"W-007":         7,
		"garbage":       -1,
		"SO-":           -1,
		"SO-2026-abc":   -1,
	}
	for in, want := range tests {
		if got := ParseNumber(in); got != want {
			t.Errorf("ParseNumber(%q) = %d, want %d", in, got, want)
		}
	}
}
