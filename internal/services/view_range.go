package services

import (
	"errors"
	"strings"
	"time"
)

const (
	ViewToday    = "today"
	ViewThisWeek = "this_week"
	ViewLastWeek = "last_week"
	ViewAllTime  = "all_time"
	ViewCustom   = "custom"
)

var (
	ErrUnknownView       = errors.New("unknown view")
	ErrRangeFromRequired = errors.New("range from date required")
	ErrRangeToRequired   = errors.New("range to date required")
)

var allTimeStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type ViewRange struct {
	View  string    `json:"view"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveViewRange maps a named view onto calendar days relative to today. An
// empty view means this_week.
func ResolveViewRange(view string, today time.Time) (ViewRange, error) {
	day := CalendarDay(today, today.Location())

	switch strings.TrimSpace(view) {
	case ViewToday:
		return ViewRange{View: ViewToday, Start: day, End: day}, nil
	case ViewThisWeek, "":
		start, end := PeriodFor(day)
		return ViewRange{View: ViewThisWeek, Start: start, End: end}, nil
	case ViewLastWeek:
		start, end := PreviousPeriodFor(day)
		return ViewRange{View: ViewLastWeek, Start: start, End: end}, nil
	case ViewAllTime:
		return ViewRange{View: ViewAllTime, Start: allTimeStart, End: day}, nil
	default:
		return ViewRange{}, ErrUnknownView
	}
}

// ParseDateRange parses an explicit from/to pair. Both bounds are required.
func ParseDateRange(rawFrom string, rawTo string) (ViewRange, error) {
	if strings.TrimSpace(rawFrom) == "" {
		return ViewRange{}, ErrRangeFromRequired
	}
	if strings.TrimSpace(rawTo) == "" {
		return ViewRange{}, ErrRangeToRequired
	}

	from, err := ParseCalendarDay(rawFrom)
	if err != nil {
		return ViewRange{}, err
	}
	to, err := ParseCalendarDay(rawTo)
	if err != nil {
		return ViewRange{}, err
	}
	if to.Before(from) {
		return ViewRange{}, ErrInvalidRange
	}
	return ViewRange{View: ViewCustom, Start: from, End: to}, nil
}
