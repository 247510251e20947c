package temporal

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfstime/pkg/gtfs"
)

// StopVisit is one stop of a trip's itinerary. Arrival and Departure are
// clock offsets from the service-day anchor and are nil when the feed left
// them blank. The descriptive fields are carried through untouched; the
// temporal computations never look at them.
type StopVisit struct {
	TripID       string
	StopID       string
	StopSequence int
	Arrival      *time.Duration
	Departure    *time.Duration

	Headsign         string
	PickupType       int8
	DropOffType      int8
	DistanceTraveled float64
	Timepoint        string
}

// EffectiveTimes returns the visit's arrival and departure, each falling
// back to the other when blank. known is false when both are blank.
func (visit *StopVisit) EffectiveTimes() (arrival time.Duration, departure time.Duration, known bool) {
	switch {
	case visit.Arrival == nil && visit.Departure == nil:
		return 0, 0, false
	case visit.Arrival == nil:
		return *visit.Departure, *visit.Departure, true
	case visit.Departure == nil:
		return *visit.Arrival, *visit.Arrival, true
	default:
		return *visit.Arrival, *visit.Departure, true
	}
}

// NewStopVisit parses the clock values of a stop_times row. The trip and
// stop identifiers are required.
func NewStopVisit(row gtfs.StopTime) (StopVisit, error) {
	if row.TripID == "" {
		return StopVisit{}, &MissingFieldError{File: "stop_times.txt", Field: "trip_id"}
	}
	if row.StopID == "" {
		return StopVisit{}, &MissingFieldError{File: "stop_times.txt", Field: "stop_id"}
	}

	visit := StopVisit{
		TripID:           row.TripID,
		StopID:           row.StopID,
		StopSequence:     row.StopSequence,
		Headsign:         row.StopHeadsign,
		PickupType:       row.PickupType,
		DropOffType:      row.DropOffType,
		DistanceTraveled: row.DistanceTraveled,
		Timepoint:        row.Timepoint,
	}

	arrival, present, err := ParseClockOffset(row.ArrivalTime)
	if err != nil {
		return StopVisit{}, err
	}
	if present {
		visit.Arrival = &arrival
	}

	departure, present, err := ParseClockOffset(row.DepartureTime)
	if err != nil {
		return StopVisit{}, err
	}
	if present {
		visit.Departure = &departure
	}

	return visit, nil
}

// TripItinerary is the ordered stop sequence of a single trip. It is always
// a materialised slice so that whole-trip invalidation can size its result
// without re-reading anything.
type TripItinerary []StopVisit

// TripItineraries groups stop_times rows into per-trip itineraries, ordered
// by stop_sequence. The sort is stable, so rows sharing a sequence number
// keep their input order.
func TripItineraries(rows []gtfs.StopTime) (map[string]TripItinerary, error) {
	visits := make([]StopVisit, 0, len(rows))

	for _, row := range rows {
		visit, err := NewStopVisit(row)
		if err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}

	sort.SliceStable(visits, func(i, j int) bool {
		if visits[i].TripID != visits[j].TripID {
			return visits[i].TripID < visits[j].TripID
		}
		return visits[i].StopSequence < visits[j].StopSequence
	})

	itineraries := map[string]TripItinerary{}
	for _, visit := range visits {
		itineraries[visit.TripID] = append(itineraries[visit.TripID], visit)
	}

	return itineraries, nil
}

// SourceItineraries reads stop_times.txt of a feed source and groups it
// into itineraries. The file is required.
func SourceItineraries(source *gtfs.Source) (map[string]TripItinerary, error) {
	stopTimes, err := source.StopTimes()
	if err != nil {
		return nil, err
	}

	return TripItineraries(stopTimes)
}

// ElapsedSeconds reconstructs, per stop, the cumulative travel seconds
// since the trip's first timed visit, with waiting times at stops removed.
//
// A visit without any timing yields a nil entry and does not take part in
// the chronology checks. If the timings are not chronological — departure
// before arrival at one stop, or arrival before the last known departure —
// every entry of the result is nil: a single corrupt row makes all the
// downstream cumulative sums meaningless, so the whole trip's derived
// timing is discarded.
//
// With startAtZero the first timed visit is reported as 0.0, which makes
// itineraries that only differ by a constant time shift compare equal. Pass
// false to keep the first visit's raw departure offset instead.
func ElapsedSeconds(itinerary TripItinerary, startAtZero bool) []*float64 {
	seconds := make([]*float64, 0, len(itinerary))
	var lastKnownDeparture *time.Duration
	var cumulative float64

	for _, visit := range itinerary {
		arrival, departure, known := visit.EffectiveTimes()

		switch {
		case !known:
			seconds = append(seconds, nil)
		case departure < arrival:
			log.Debug().
				Str("trip_id", visit.TripID).
				Msg("Cannot calculate times: departure before arrival at same stop")
			return make([]*float64, len(itinerary))
		case lastKnownDeparture == nil:
			cumulative = 0.0
			if !startAtZero {
				cumulative = departure.Seconds()
			}
			seconds = append(seconds, ref(cumulative))
			lastKnownDeparture = ref(departure)
		case arrival < *lastKnownDeparture:
			log.Debug().
				Str("trip_id", visit.TripID).
				Msg("Cannot calculate times: arrival before last known departure")
			return make([]*float64, len(itinerary))
		default:
			cumulative += (arrival - *lastKnownDeparture).Seconds()
			seconds = append(seconds, ref(cumulative))
			lastKnownDeparture = ref(departure)
		}
	}

	return seconds
}

func ref[T any](value T) *T {
	return &value
}
