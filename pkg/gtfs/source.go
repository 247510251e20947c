package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// ErrFileAbsent is returned when a requested table file does not exist in
// the feed. For optional tables callers treat this as empty input.
var ErrFileAbsent = errors.New("gtfs file absent")

func init() {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})
}

// Source reads the GTFS text tables of a single feed, either from an
// extracted directory or directly from a zip archive.
type Source struct {
	path      string
	isArchive bool
}

func OpenSource(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return &Source{path: path}, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return &Source{path: path, isArchive: true}, nil
	}

	return nil, fmt.Errorf("%s is neither a directory nor a zip archive", path)
}

func (s *Source) Trips() ([]Trip, error) {
	var trips []Trip
	err := s.read("trips.txt", &trips)
	return trips, err
}

func (s *Source) StopTimes() ([]StopTime, error) {
	var stopTimes []StopTime
	err := s.read("stop_times.txt", &stopTimes)
	return stopTimes, err
}

func (s *Source) Calendars() ([]Calendar, error) {
	var calendars []Calendar
	err := s.read("calendar.txt", &calendars)
	return calendars, err
}

func (s *Source) CalendarDates() ([]CalendarDate, error) {
	var calendarDates []CalendarDate
	err := s.read("calendar_dates.txt", &calendarDates)
	return calendarDates, err
}

func (s *Source) Frequencies() ([]Frequency, error) {
	var frequencies []Frequency
	err := s.read("frequencies.txt", &frequencies)
	return frequencies, err
}

func (s *Source) read(fileName string, destination interface{}) error {
	log.Debug().Str("file", fileName).Str("feed", s.path).Msg("Loading file")

	reader, err := s.open(fileName)
	if err != nil {
		return err
	}
	defer reader.Close()

	err = gocsv.Unmarshal(reader, destination)
	if err != nil {
		return fmt.Errorf("%s: %w", fileName, err)
	}

	return nil
}

func (s *Source) open(fileName string) (io.ReadCloser, error) {
	if s.isArchive {
		return s.openFromArchive(fileName)
	}

	file, err := os.Open(filepath.Join(s.path, fileName))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", fileName, ErrFileAbsent)
	}

	return file, err
}

func (s *Source) openFromArchive(fileName string) (io.ReadCloser, error) {
	archive, err := zip.OpenReader(s.path)
	if err != nil {
		return nil, err
	}

	for _, zipFile := range archive.File {
		if zipFile.Name != fileName {
			continue
		}

		file, err := zipFile.Open()
		if err != nil {
			archive.Close()
			return nil, err
		}

		return &archiveEntry{ReadCloser: file, archive: archive}, nil
	}

	archive.Close()
	return nil, fmt.Errorf("%s: %w", fileName, ErrFileAbsent)
}

// archiveEntry keeps the enclosing zip reader open until the entry itself
// is closed.
type archiveEntry struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (e *archiveEntry) Close() error {
	err := e.ReadCloser.Close()
	e.archive.Close()
	return err
}
