package gtfs

import "time"

type Trip struct {
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	ID        string `csv:"trip_id"`
	Headsign  string `csv:"trip_headsign"`
	Name      string `csv:"trip_short_name"`
	BlockID   string `csv:"block_id"`
	ShapeID   string `csv:"shape_id"`
}

type StopTime struct {
	TripID           string  `csv:"trip_id"`
	ArrivalTime      string  `csv:"arrival_time"`
	DepartureTime    string  `csv:"departure_time"`
	StopID           string  `csv:"stop_id"`
	StopSequence     int     `csv:"stop_sequence"`
	StopHeadsign     string  `csv:"stop_headsign"`
	PickupType       int8    `csv:"pickup_type"`
	DropOffType      int8    `csv:"drop_off_type"`
	DistanceTraveled float64 `csv:"shape_dist_traveled"`
	Timepoint        string  `csv:"timepoint"`
}

type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
	Start     string `csv:"start_date"`
	End       string `csv:"end_date"`
}

// RunningDays returns the weekdays selected by this rule. An empty result
// means the rule selects no days at all, not every day.
func (c *Calendar) RunningDays() map[time.Weekday]bool {
	days := map[time.Weekday]bool{}

	if c.Monday == 1 {
		days[time.Monday] = true
	}
	if c.Tuesday == 1 {
		days[time.Tuesday] = true
	}
	if c.Wednesday == 1 {
		days[time.Wednesday] = true
	}
	if c.Thursday == 1 {
		days[time.Thursday] = true
	}
	if c.Friday == 1 {
		days[time.Friday] = true
	}
	if c.Saturday == 1 {
		days[time.Saturday] = true
	}
	if c.Sunday == 1 {
		days[time.Sunday] = true
	}

	return days
}

type CalendarDate struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int    `csv:"exception_type"`
}

type Frequency struct {
	TripID         string `csv:"trip_id"`
	StartTime      string `csv:"start_time"`
	EndTime        string `csv:"end_time"`
	HeadwaySeconds int    `csv:"headway_secs"`
	ExactTimes     string `csv:"exact_times"`
}
