package temporal

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Computing the anchor needs a timezone lookup, which is slow enough to
// dominate bulk conversions; anchors for recent operating days are cached.
const anchorCacheSize = 512

const twelveHours = 12 * time.Hour

// TimeCache converts GTFS clock offsets to absolute instants for a fixed
// timezone.
//
// GTFS measures clock values from "noon of the service day minus twelve
// hours" rather than from local midnight, because midnight can be skipped
// or repeated around daylight-saving transitions while noon never is. The
// anchor is therefore derived from local noon with absolute-duration
// arithmetic, which stays correct on both spring-forward and fall-back
// days.
//
// One instance serves one timezone. Instances are not safe for concurrent
// use; give each concurrent feed load its own cache.
type TimeCache struct {
	location *time.Location
	anchors  *lru.Cache[Date, time.Time]
}

func NewTimeCache(location *time.Location) *TimeCache {
	anchors, _ := lru.New[Date, time.Time](anchorCacheSize)

	return &TimeCache{
		location: location,
		anchors:  anchors,
	}
}

// ReferenceTime returns the service-day anchor for an operating day: local
// noon minus twelve hours of absolute time. On regular days this is local
// midnight; on daylight-saving days it is shifted by the transition.
func (cache *TimeCache) ReferenceTime(opday Date) time.Time {
	if anchor, cached := cache.anchors.Get(opday); cached {
		return anchor
	}

	noon := time.Date(opday.Year, opday.Month, opday.Day, 12, 0, 0, 0, cache.location)
	anchor := noon.Add(-twelveHours)
	cache.anchors.Add(opday, anchor)

	return anchor
}

// ToTime anchors a GTFS clock offset to an operating day and returns the
// resulting absolute instant. Offsets beyond 24 hours roll into the
// following civil day as expected.
func (cache *TimeCache) ToTime(opday Date, offset time.Duration) time.Time {
	return cache.ReferenceTime(opday).Add(offset)
}
