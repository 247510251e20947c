// Package mot maps GTFS route types, including the Google extended route
// types, onto coarse modes of transport.
package mot

type Mode string

const (
	ModeTram      Mode = "tram"
	ModeSubway    Mode = "subway"
	ModeRail      Mode = "rail"
	ModeBus       Mode = "bus"
	ModeFerry     Mode = "ferry"
	ModeCableCar  Mode = "cablecar"
	ModeGondola   Mode = "gondola"
	ModeFunicular Mode = "funicular"
	ModeCoach     Mode = "coach"
)

var simpleRouteTypes = map[int]Mode{
	0:   ModeTram,
	1:   ModeSubway,
	2:   ModeRail,
	3:   ModeBus,
	4:   ModeFerry,
	5:   ModeCableCar,
	6:   ModeGondola,
	7:   ModeFunicular,
	200: ModeCoach,
}

// FromRouteType returns the mode of transport for a GTFS (extended) route
// type, or fallback for route types with no mapping.
//
// https://developers.google.com/transit/gtfs/reference/extended-route-types
func FromRouteType(routeType int, fallback Mode) Mode {
	switch {
	case 100 <= routeType && routeType <= 117:
		routeType = 2
	case 200 <= routeType && routeType <= 209:
		routeType = 200
	case 400 <= routeType && routeType <= 405:
		routeType = 1
	case 700 <= routeType && routeType <= 716:
		routeType = 3
	case 900 <= routeType && routeType <= 906:
		routeType = 0
	case routeType == 1000 || routeType == 1200:
		routeType = 4
	case routeType == 1300:
		routeType = 6
	case routeType == 1400:
		routeType = 7
	}

	if mode, mapped := simpleRouteTypes[routeType]; mapped {
		return mode
	}
	return fallback
}
