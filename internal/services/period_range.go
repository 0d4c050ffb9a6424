package services

import "time"

// PeriodStartWeekday is the first day of the tracking week.
const PeriodStartWeekday = time.Thursday

// PeriodFor returns the Thursday..Wednesday period containing reference. The
// reference is truncated to midnight in its own location first, so the time of
// day never moves it into a neighbouring period.
func PeriodFor(reference time.Time) (time.Time, time.Time) {
	day := DateAtLocation(reference, reference.Location())
	offset := (mondayIndex(day.Weekday()) - mondayIndex(PeriodStartWeekday) + 7) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// PreviousPeriodFor returns the period immediately before the one containing
// reference.
func PreviousPeriodFor(reference time.Time) (time.Time, time.Time) {
	return PeriodFor(reference.AddDate(0, 0, -7))
}

// mondayIndex maps Monday..Sunday to 0..6.
func mondayIndex(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}
