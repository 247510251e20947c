package temporal

import (
	"github.com/travigo/gtfstime/pkg/gtfs"
)

// OperatingDayIndex answers which days the loaded trips actually run on.
//
// Loading several feed sources accumulates: a trip present in more than one
// source runs on the union of the days each source assigns it. Instances
// are not safe for concurrent use; give each concurrent feed load its own
// index.
type OperatingDayIndex struct {
	tripDays map[string]DateSet
}

// NewOperatingDayIndex creates an index pre-populated from seed. The seed
// is copied, never aliased, so later loads cannot leak into it.
func NewOperatingDayIndex(seed map[string]DateSet) *OperatingDayIndex {
	tripDays := make(map[string]DateSet, len(seed))

	for tripID, days := range seed {
		copied := make(DateSet, len(days))
		for day := range days {
			copied[day] = struct{}{}
		}
		tripDays[tripID] = copied
	}

	return &OperatingDayIndex{tripDays: tripDays}
}

// Load resolves the calendar of a feed source and unions the operating days
// of every trip's service into the trip's day set. trips.txt is required;
// the calendar files are optional.
func (index *OperatingDayIndex) Load(source *gtfs.Source) error {
	services, err := ResolveSourceCalendar(source, FullWindow())
	if err != nil {
		return err
	}

	trips, err := source.Trips()
	if err != nil {
		return err
	}

	for _, trip := range trips {
		if trip.ID == "" {
			return &MissingFieldError{File: "trips.txt", Field: "trip_id"}
		}

		days, known := index.tripDays[trip.ID]
		if !known {
			days = DateSet{}
			index.tripDays[trip.ID] = days
		}

		for day := range services[trip.ServiceID] {
			days[day] = struct{}{}
		}
	}

	return nil
}

// QualifiedDays returns the union, over the given trips, of every operating
// day satisfying qualifies. An unknown trip id is an error rather than an
// empty result, so callers can tell "runs on no qualifying day" apart from
// "never heard of this trip". Single-trip callers pass a one-element slice.
func (index *OperatingDayIndex) QualifiedDays(tripIDs []string, qualifies func(Date) bool) (DateSet, error) {
	qualified := DateSet{}

	for _, tripID := range tripIDs {
		days, known := index.tripDays[tripID]
		if !known {
			return nil, &UnknownTripError{TripID: tripID}
		}

		for day := range days {
			if qualifies(day) {
				qualified[day] = struct{}{}
			}
		}
	}

	return qualified, nil
}

// HasQualifiedDay reports whether any of the given trips operates on a day
// satisfying qualifies. It short-circuits on the first match, which is
// cheaper than QualifiedDays when only existence matters.
func (index *OperatingDayIndex) HasQualifiedDay(tripIDs []string, qualifies func(Date) bool) (bool, error) {
	for _, tripID := range tripIDs {
		days, known := index.tripDays[tripID]
		if !known {
			return false, &UnknownTripError{TripID: tripID}
		}

		for day := range days {
			if qualifies(day) {
				return true, nil
			}
		}
	}

	return false, nil
}
