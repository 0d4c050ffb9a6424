package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange parses optional YYYY-MM-DD bounds. A missing bound leaves
// that side of the range open.
func ParseExportRange(rawFrom string, rawTo string) (*time.Time, *time.Time, error) {
	var from *time.Time
	if strings.TrimSpace(rawFrom) != "" {
		parsedFrom, err := ParseCalendarDay(rawFrom)
		if err != nil {
			return nil, nil, ErrExportFromDateInvalid
		}
		from = &parsedFrom
	}

	var to *time.Time
	if strings.TrimSpace(rawTo) != "" {
		parsedTo, err := ParseCalendarDay(rawTo)
		if err != nil {
			return nil, nil, ErrExportToDateInvalid
		}
		to = &parsedTo
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrExportRangeInvalid
	}
	return from, to, nil
}
