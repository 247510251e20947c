package temporal

import (
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfstime/pkg/gtfs"
)

// DateSet is a set of operating days.
type DateSet map[Date]struct{}

// OperatingDaySet maps a service id to the exact days the service runs on,
// after exception overlay.
type OperatingDaySet map[string]DateSet

// Window clips calendar expansion to an inclusive date range.
type Window struct {
	First Date
	Last  Date
}

func FullWindow() Window {
	return Window{First: MinDate, Last: MaxDate}
}

func (w Window) contains(date Date) bool {
	return !date.Before(w.First) && !date.After(w.Last)
}

// ResolveCalendar combines weekly calendar rules with date-level exceptions
// into per-service operating-day sets, clipped to the window.
//
// Exceptions are applied in input order on top of the expanded rules, so
// only the final membership of a date matters. Services that appear only in
// the exception rows are legal and start from an empty base set.
func ResolveCalendar(calendars []gtfs.Calendar, calendarDates []gtfs.CalendarDate, window Window) (OperatingDaySet, error) {
	services := OperatingDaySet{}

	for _, calendar := range calendars {
		if calendar.ServiceID == "" {
			return nil, &MissingFieldError{File: "calendar.txt", Field: "service_id"}
		}

		days, err := expandCalendar(&calendar, window)
		if err != nil {
			return nil, err
		}

		services[calendar.ServiceID] = days
	}

	for _, exception := range calendarDates {
		if exception.ServiceID == "" {
			return nil, &MissingFieldError{File: "calendar_dates.txt", Field: "service_id"}
		}

		date, present, err := ParseDate(exception.Date)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, &MissingFieldError{File: "calendar_dates.txt", Field: "date"}
		}

		if !window.contains(date) {
			continue
		}

		switch exception.ExceptionType {
		case 1:
			days := services[exception.ServiceID]
			if days == nil {
				days = DateSet{}
				services[exception.ServiceID] = days
			}
			days[date] = struct{}{}
		case 2:
			delete(services[exception.ServiceID], date)
		default:
			return nil, &DataError{
				Field:  "exception_type",
				Value:  strconv.Itoa(exception.ExceptionType),
				Reason: "must be 1 (added) or 2 (removed)",
			}
		}
	}

	return services, nil
}

// ResolveSourceCalendar resolves the calendar of a single feed source.
// Both calendar files are optional; a feed may use either or none at all,
// in which case every service set is empty.
func ResolveSourceCalendar(source *gtfs.Source, window Window) (OperatingDaySet, error) {
	calendars, err := source.Calendars()
	if err != nil {
		if !errors.Is(err, gtfs.ErrFileAbsent) {
			return nil, err
		}
		log.Info().Msg("Skipping calendar.txt (not found)")
	}

	calendarDates, err := source.CalendarDates()
	if err != nil {
		if !errors.Is(err, gtfs.ErrFileAbsent) {
			return nil, err
		}
		log.Info().Msg("Skipping calendar_dates.txt (not found)")
	}

	return ResolveCalendar(calendars, calendarDates, window)
}

func expandCalendar(calendar *gtfs.Calendar, window Window) (DateSet, error) {
	start, present, err := ParseDate(calendar.Start)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, &MissingFieldError{File: "calendar.txt", Field: "start_date"}
	}

	end, present, err := ParseDate(calendar.End)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, &MissingFieldError{File: "calendar.txt", Field: "end_date"}
	}

	if start.Before(window.First) {
		start = window.First
	}
	if end.After(window.Last) {
		end = window.Last
	}

	runningDays := calendar.RunningDays()
	days := DateSet{}

	// a rule selecting no weekdays selects no days, never all of them
	if len(runningDays) == 0 {
		return days, nil
	}

	for date := start; !date.After(end); date = date.Next() {
		if runningDays[date.Weekday()] {
			days[date] = struct{}{}
		}
	}

	return days, nil
}
