package services

import (
	"errors"
	"testing"
	"time"
)

func TestResolveViewRange(t *testing.T) {
	today := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		view      string
		wantView  string
		wantStart string
		wantEnd   string
	}{
		{view: ViewToday, wantView: ViewToday, wantStart: "2024-06-10", wantEnd: "2024-06-10"},
		{view: ViewThisWeek, wantView: ViewThisWeek, wantStart: "2024-06-06", wantEnd: "2024-06-12"},
		{view: "", wantView: ViewThisWeek, wantStart: "2024-06-06", wantEnd: "2024-06-12"},
		{view: ViewLastWeek, wantView: ViewLastWeek, wantStart: "2024-05-30", wantEnd: "2024-06-05"},
		{view: ViewAllTime, wantView: ViewAllTime, wantStart: "2000-01-01", wantEnd: "2024-06-10"},
	}

	for _, tt := range tests {
		t.Run(tt.wantView+"/"+tt.view, func(t *testing.T) {
			resolved, err := ResolveViewRange(tt.view, today)
			if err != nil {
				t.Fatalf("ResolveViewRange(%q) error = %v", tt.view, err)
			}
			if resolved.View != tt.wantView {
				t.Fatalf("View = %q, want %q", resolved.View, tt.wantView)
			}
			if FormatCalendarDay(resolved.Start) != tt.wantStart || FormatCalendarDay(resolved.End) != tt.wantEnd {
				t.Fatalf("range = %s..%s, want %s..%s", FormatCalendarDay(resolved.Start), FormatCalendarDay(resolved.End), tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolveViewRangeUsesLocalCalendarDay(t *testing.T) {
	location := time.FixedZone("UTC+9", 9*60*60)
	// Wednesday evening in UTC is already Thursday in UTC+9.
	now := time.Date(2024, time.June, 12, 20, 0, 0, 0, time.UTC).In(location)

	resolved, err := ResolveViewRange(ViewThisWeek, now)
	if err != nil {
		t.Fatalf("ResolveViewRange() error = %v", err)
	}
	if FormatCalendarDay(resolved.Start) != "2024-06-13" {
		t.Fatalf("start = %s, want 2024-06-13", FormatCalendarDay(resolved.Start))
	}
	if resolved.Start.Location() != time.UTC {
		t.Fatalf("expected UTC calendar day, got %v", resolved.Start.Location())
	}
}

func TestResolveViewRangeRejectsUnknownView(t *testing.T) {
	if _, err := ResolveViewRange("fortnight", time.Now()); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want error
	}{
		{name: "valid", from: "2024-06-01", to: "2024-06-30"},
		{name: "same day", from: "2024-06-01", to: "2024-06-01"},
		{name: "missing from", from: "", to: "2024-06-30", want: ErrRangeFromRequired},
		{name: "missing to", from: "2024-06-01", to: " ", want: ErrRangeToRequired},
		{name: "bad date", from: "2024-13-01", to: "2024-06-30", want: ErrInvalidDate},
		{name: "reversed", from: "2024-06-30", to: "2024-06-01", want: ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := ParseDateRange(tt.from, tt.to)
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Fatalf("ParseDateRange() error = %v, want %v", err, tt.want)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateRange() unexpected error: %v", err)
			}
			if resolved.View != ViewCustom {
				t.Fatalf("View = %q, want %q", resolved.View, ViewCustom)
			}
		})
	}
}
