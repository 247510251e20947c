package temporal

import (
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Date is a GTFS calendar date. It carries no time of day and no timezone;
// attaching either is the job of TimeCache.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

var (
	MinDate = Date{1, time.January, 1}
	MaxDate = Date{9999, time.December, 31}
)

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	year, month, day := time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, time.UTC).Date()
	return Date{year, month, day}
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// Parsing GTFS dates with the time package is slow and feeds repeat the
// same handful of strings across millions of rows, so results are cached.
// 512 entries covers more than a year of distinct service dates.
const dateCacheSize = 512

// Clock strings are even denser than dates (one per stop visit), so this is
// the dominant per-row cost without the cache.
const clockCacheSize = 2048

var dateCache, _ = lru.New[string, Date](dateCacheSize)
var clockCache, _ = lru.New[string, time.Duration](clockCacheSize)

// ParseDate parses a GTFS YYYYMMDD date. An empty value is reported as
// absent, not as an error.
func ParseDate(value string) (Date, bool, error) {
	if value == "" {
		return Date{}, false, nil
	}

	if date, cached := dateCache.Get(value); cached {
		return date, true, nil
	}

	if len(value) != 8 || !allDigits(value) {
		return Date{}, false, &FormatError{Field: "date", Value: value}
	}

	year, _ := strconv.Atoi(value[0:4])
	month, _ := strconv.Atoi(value[4:6])
	day, _ := strconv.Atoi(value[6:8])

	// time.Date normalises out-of-range components, so a changed roundtrip
	// means the digits did not name a real calendar date
	normalised := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if normalised.Year() != year || normalised.Month() != time.Month(month) || normalised.Day() != day {
		return Date{}, false, &FormatError{Field: "date", Value: value}
	}

	date := Date{year, time.Month(month), day}
	dateCache.Add(value, date)

	return date, true, nil
}

// ParseClockOffset parses a GTFS H:MM:SS clock value into a duration
// measured from the service-day anchor. Hours may exceed 23 for
// post-midnight service and digit grouping is deliberately not validated.
// An empty value is reported as absent, not as an error.
func ParseClockOffset(value string) (time.Duration, bool, error) {
	if value == "" {
		return 0, false, nil
	}

	if offset, cached := clockCache.Get(value); cached {
		return offset, true, nil
	}

	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false, &FormatError{Field: "time", Value: value}
	}

	hours, hoursErr := strconv.Atoi(parts[0])
	minutes, minutesErr := strconv.Atoi(parts[1])
	seconds, secondsErr := strconv.Atoi(parts[2])
	if hoursErr != nil || minutesErr != nil || secondsErr != nil {
		return 0, false, &FormatError{Field: "time", Value: value}
	}
	if hours < 0 || minutes < 0 || seconds < 0 {
		return 0, false, &FormatError{Field: "time", Value: value}
	}

	offset := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
	clockCache.Add(value, offset)

	return offset, true, nil
}

func allDigits(value string) bool {
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
