package temporal

import (
	"testing"
	"time"

	_ "time/tzdata"
)

func berlin(t *testing.T) *time.Location {
	t.Helper()

	location, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	return location
}

func TestTimeCacheRegularDay(t *testing.T) {
	location := berlin(t)
	cache := NewTimeCache(location)
	opday := Date{2022, time.May, 18}

	// without a DST switch the reference time is plain local midnight
	if got, want := cache.ReferenceTime(opday), time.Date(2022, time.May, 18, 0, 0, 0, 0, location); !got.Equal(want) {
		t.Errorf("ReferenceTime = %v, want %v", got, want)
	}

	// and a clock offset is effectively the local time
	offset := 10*time.Hour + 30*time.Minute + 15*time.Second
	if got, want := cache.ToTime(opday, offset), time.Date(2022, time.May, 18, 10, 30, 15, 0, location); !got.Equal(want) {
		t.Errorf("ToTime = %v, want %v", got, want)
	}

	// offsets past 24 hours roll into the next civil day
	offset = 26*time.Hour + 20*time.Minute + 45*time.Second
	if got, want := cache.ToTime(opday, offset), time.Date(2022, time.May, 19, 2, 20, 45, 0, location); !got.Equal(want) {
		t.Errorf("ToTime past midnight = %v, want %v", got, want)
	}
}

func TestTimeCacheSpringForward(t *testing.T) {
	location := berlin(t)
	cache := NewTimeCache(location)
	// Berlin skips 02:00-03:00 on 2022-03-27
	opday := Date{2022, time.March, 27}

	// one hour is missing between midnight and noon, so noon minus twelve
	// hours lands at 23:00 the evening before
	if got, want := cache.ReferenceTime(opday), time.Date(2022, time.March, 26, 23, 0, 0, 0, location); !got.Equal(want) {
		t.Errorf("ReferenceTime = %v, want %v", got, want)
	}

	// an offset sweeping past the gap cancels the shift and matches local time
	offset := 10*time.Hour + 30*time.Minute + 15*time.Second
	if got, want := cache.ToTime(opday, offset), time.Date(2022, time.March, 27, 10, 30, 15, 0, location); !got.Equal(want) {
		t.Errorf("ToTime past gap = %v, want %v", got, want)
	}

	// an offset staying before the gap is shifted by one hour versus naive
	// local time
	offset = 2*time.Hour + 10*time.Minute + 7*time.Second
	if got, want := cache.ToTime(opday, offset), time.Date(2022, time.March, 27, 1, 10, 7, 0, location); !got.Equal(want) {
		t.Errorf("ToTime before gap = %v, want %v", got, want)
	}
}

func TestTimeCacheFallBack(t *testing.T) {
	location := berlin(t)
	cache := NewTimeCache(location)
	// Berlin repeats 02:00-03:00 on 2022-10-30, a 25 hour day
	opday := Date{2022, time.October, 30}

	// noon is 12:00 CET = 11:00 UTC, so the anchor is 23:00 UTC the
	// evening before (01:00 CEST, not local midnight)
	if got, want := cache.ReferenceTime(opday), time.Date(2022, time.October, 29, 23, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ReferenceTime = %v, want %v", got, want)
	}

	// an offset landing inside the repeated hour resolves unambiguously
	// through absolute arithmetic
	if got, want := cache.ToTime(opday, time.Hour), time.Date(2022, time.October, 30, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ToTime in repeated hour = %v, want %v", got, want)
	}

	// past the overlap the offset matches naive local time again
	offset := 13 * time.Hour
	if got, want := cache.ToTime(opday, offset), time.Date(2022, time.October, 30, 13, 0, 0, 0, location); !got.Equal(want) {
		t.Errorf("ToTime past overlap = %v, want %v", got, want)
	}
}

func TestTimeCacheAnswersAreStable(t *testing.T) {
	cache := NewTimeCache(berlin(t))
	opday := Date{2022, time.March, 27}

	first := cache.ReferenceTime(opday)
	second := cache.ReferenceTime(opday)

	if !first.Equal(second) {
		t.Errorf("cached anchor %v differs from first computation %v", second, first)
	}
}

func TestTimeCacheInstancesAreIndependent(t *testing.T) {
	berlinCache := NewTimeCache(berlin(t))
	utcCache := NewTimeCache(time.UTC)
	opday := Date{2022, time.May, 18}

	berlinAnchor := berlinCache.ReferenceTime(opday)
	utcAnchor := utcCache.ReferenceTime(opday)

	if berlinAnchor.Equal(utcAnchor) {
		t.Error("caches for different timezones agreed on the anchor")
	}
	if want := time.Date(2022, time.May, 18, 0, 0, 0, 0, time.UTC); !utcAnchor.Equal(want) {
		t.Errorf("UTC anchor = %v, want %v", utcAnchor, want)
	}
}
