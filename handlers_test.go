package main

import (
	"testing"
	"time"

	"budgetapp/store"
)

func TestParseAmount(t *testing.T) {
	d, err := parseAmount("42.50")
	if err != nil {
		t.Fatalf("parseAmount: %v", err)
	}
	if d.String() != "42.5" && d.String() != "42.50" {
		t.Fatalf("parseAmount = %s, want 42.50", d)
	}
	if _, err := parseAmount("not-a-number"); err == nil {
		t.Fatal("expected error for malformed amount")
	}
	d, err = parseAmount("")
	if err != nil || !d.IsZero() {
		t.Fatalf("empty amount should be zero, got %s err=%v", d, err)
	}
}

func TestParseDateDayOnlyUsesServerZone(t *testing.T) {
	got, err := parseDate("2025-03-01")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	want := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("parseDate = %v, want %v", got, want)
	}

	// The parsed day must fall inside the summary window of its own month,
	// whatever zone the server runs in.
	lower, upper := store.MonthBounds(got)
	if got.Before(lower) || !got.Before(upper) {
		t.Fatalf("date %v outside its month window [%v, %v)", got, lower, upper)
	}
}

func TestParseDateRFC3339KeepsOffset(t *testing.T) {
	got, err := parseDate("2025-03-01T10:30:00+02:00")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if !got.Equal(time.Date(2025, time.March, 1, 8, 30, 0, 0, time.UTC)) {
		t.Fatalf("parseDate = %v, want 2025-03-01T08:30:00Z", got)
	}
}
