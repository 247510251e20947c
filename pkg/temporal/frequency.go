package temporal

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfstime/pkg/gtfs"
)

// StartOffsets maps a trip id to the sorted clock offsets at which the trip
// starts, as implied by headway-based service.
type StartOffsets map[string][]time.Duration

// ExpandFrequencies turns each (start, end, headway) interval into discrete
// trip start offsets. The end offset is exclusive at second resolution.
//
// Frequency-based entries (exact_times absent or "0") are treated as fixed
// schedule. That is an approximation: real starting times of such trips are
// only known in combination with a realtime feed.
func ExpandFrequencies(rows []gtfs.Frequency) (StartOffsets, error) {
	offsets := StartOffsets{}
	frequencyBased := 0

	for _, row := range rows {
		if row.TripID == "" {
			return nil, &MissingFieldError{File: "frequencies.txt", Field: "trip_id"}
		}

		start, present, err := ParseClockOffset(row.StartTime)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, &MissingFieldError{File: "frequencies.txt", Field: "start_time"}
		}

		end, present, err := ParseClockOffset(row.EndTime)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, &MissingFieldError{File: "frequencies.txt", Field: "end_time"}
		}

		if row.HeadwaySeconds <= 0 {
			return nil, &DataError{
				Field:  "headway_secs",
				Value:  strconv.Itoa(row.HeadwaySeconds),
				Reason: "must be > 0",
			}
		}
		headway := time.Duration(row.HeadwaySeconds) * time.Second

		switch row.ExactTimes {
		case "", "0":
			frequencyBased++
		case "1":
		default:
			return nil, &DataError{
				Field:  "exact_times",
				Value:  row.ExactTimes,
				Reason: "must be 0 or 1",
			}
		}

		// the half second absorbs boundary ambiguity at exact multiples of
		// the headway
		span := end - start - 500*time.Millisecond
		journeys := int(math.Floor(float64(span)/float64(headway))) + 1
		if journeys <= 0 {
			log.Warn().
				Str("trip_id", row.TripID).
				Int("journeys", journeys).
				Msg("Frequency entry yields no journeys")
			continue
		}

		for i := 0; i < journeys; i++ {
			offsets[row.TripID] = append(offsets[row.TripID], start+time.Duration(i)*headway)
		}
	}

	if frequencyBased > 0 {
		log.Warn().
			Int("count", frequencyBased).
			Msg("Treated frequency-based entries as fixed schedule")
	}

	for _, tripOffsets := range offsets {
		sort.SliceStable(tripOffsets, func(i, j int) bool {
			return tripOffsets[i] < tripOffsets[j]
		})
	}

	return offsets, nil
}

// ExpandSourceFrequencies reads and expands frequencies.txt of a feed
// source. The file is optional; an absent file yields no offsets.
func ExpandSourceFrequencies(source *gtfs.Source) (StartOffsets, error) {
	frequencies, err := source.Frequencies()
	if err != nil {
		if !errors.Is(err, gtfs.ErrFileAbsent) {
			return nil, err
		}
		log.Info().Msg("Skipping frequencies.txt (not found)")
	}

	return ExpandFrequencies(frequencies)
}
