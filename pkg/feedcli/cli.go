package feedcli

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"

	"github.com/travigo/gtfstime/pkg/gtfs"
	"github.com/travigo/gtfstime/pkg/temporal"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "feed",
		Usage: "Inspect the temporal structure of a GTFS feed",
		Subcommands: []*cli.Command{
			{
				Name:  "operating-days",
				Usage: "Print the days a trip actually operates on",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "feed",
						Usage:    "Path of the feed directory or zip archive",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "trip",
						Usage:    "Trip ID to query, can be repeated",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "Only report days on or after this date (YYYYMMDD)",
					},
					&cli.StringFlag{
						Name:  "to",
						Usage: "Only report days on or before this date (YYYYMMDD)",
					},
				},
				Action: func(c *cli.Context) error {
					source, err := gtfs.OpenSource(c.String("feed"))
					if err != nil {
						return err
					}

					window, err := parseWindow(c.String("from"), c.String("to"))
					if err != nil {
						return err
					}

					index := temporal.NewOperatingDayIndex(nil)
					if err := index.Load(source); err != nil {
						return err
					}

					days, err := index.QualifiedDays(c.StringSlice("trip"), func(day temporal.Date) bool {
						return !day.Before(window.First) && !day.After(window.Last)
					})
					if err != nil {
						return err
					}

					for _, day := range sortedDays(days) {
						fmt.Println(day)
					}

					return nil
				},
			},
			{
				Name:  "elapsed",
				Usage: "Print reconstructed cumulative travel seconds for a trip",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "feed",
						Usage:    "Path of the feed directory or zip archive",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "trip",
						Usage:    "Trip ID to query",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "raw-start",
						Usage: "Keep the first stop's absolute offset instead of starting at zero",
					},
				},
				Action: func(c *cli.Context) error {
					source, err := gtfs.OpenSource(c.String("feed"))
					if err != nil {
						return err
					}

					itineraries, err := temporal.SourceItineraries(source)
					if err != nil {
						return err
					}

					tripID := c.String("trip")
					itinerary, found := itineraries[tripID]
					if !found {
						return fmt.Errorf("no stop times for trip %q", tripID)
					}

					seconds := temporal.ElapsedSeconds(itinerary, !c.Bool("raw-start"))
					for position, visit := range itinerary {
						if seconds[position] == nil {
							fmt.Printf("%s\t-\n", visit.StopID)
						} else {
							fmt.Printf("%s\t%.0f\n", visit.StopID, *seconds[position])
						}
					}

					return nil
				},
			},
			{
				Name:  "times",
				Usage: "Print absolute stop times of a trip on an operating day",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "feed",
						Usage:    "Path of the feed directory or zip archive",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "trip",
						Usage:    "Trip ID to query",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "date",
						Usage:    "Operating day (YYYYMMDD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "timezone",
						Usage: "Feed timezone",
						Value: "Europe/London",
					},
				},
				Action: func(c *cli.Context) error {
					source, err := gtfs.OpenSource(c.String("feed"))
					if err != nil {
						return err
					}

					opday, present, err := temporal.ParseDate(c.String("date"))
					if err != nil {
						return err
					}
					if !present {
						return fmt.Errorf("date must not be empty")
					}

					location, err := time.LoadLocation(c.String("timezone"))
					if err != nil {
						return err
					}

					itineraries, err := temporal.SourceItineraries(source)
					if err != nil {
						return err
					}

					tripID := c.String("trip")
					itinerary, found := itineraries[tripID]
					if !found {
						return fmt.Errorf("no stop times for trip %q", tripID)
					}

					timeCache := temporal.NewTimeCache(location)
					for _, visit := range itinerary {
						arrival, departure, known := visit.EffectiveTimes()
						if !known {
							fmt.Printf("%s\t-\t-\n", visit.StopID)
							continue
						}

						fmt.Printf("%s\t%s\t%s\n",
							visit.StopID,
							timeCache.ToTime(opday, arrival).Format(time.RFC3339),
							timeCache.ToTime(opday, departure).Format(time.RFC3339),
						)
					}

					return nil
				},
			},
			{
				Name:  "frequencies",
				Usage: "Print the expanded start offsets of headway-based trips",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "feed",
						Usage:    "Path of the feed directory or zip archive",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					source, err := gtfs.OpenSource(c.String("feed"))
					if err != nil {
						return err
					}

					offsets, err := temporal.ExpandSourceFrequencies(source)
					if err != nil {
						return err
					}

					if len(offsets) == 0 {
						log.Info().Msg("Feed has no frequency-based trips")
						return nil
					}

					tripIDs := maps.Keys(offsets)
					sort.Strings(tripIDs)

					for _, tripID := range tripIDs {
						for _, offset := range offsets[tripID] {
							fmt.Printf("%s\t%s\n", tripID, offset)
						}
					}

					return nil
				},
			},
		},
	}
}

func parseWindow(from string, to string) (temporal.Window, error) {
	window := temporal.FullWindow()

	first, present, err := temporal.ParseDate(from)
	if err != nil {
		return temporal.Window{}, err
	}
	if present {
		window.First = first
	}

	last, present, err := temporal.ParseDate(to)
	if err != nil {
		return temporal.Window{}, err
	}
	if present {
		window.Last = last
	}

	return window, nil
}

func sortedDays(days temporal.DateSet) []temporal.Date {
	sorted := maps.Keys(days)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})
	return sorted
}
