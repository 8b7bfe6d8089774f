// Package geo computes sunrise and sunset for a fixed location and answers
// whether a given moment falls at night.
package geo

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// AstroTimes contains astronomical times for a day
type AstroTimes struct {
	Dawn     time.Time `json:"dawn"`
	Sunrise  time.Time `json:"sunrise"`
	Noon     time.Time `json:"noon"`
	Sunset   time.Time `json:"sunset"`
	Dusk     time.Time `json:"dusk"`
	Midnight time.Time `json:"midnight"`
}

// Location is a named point on Earth
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// Calculator calculates astronomical times for one location
type Calculator struct {
	mu    sync.RWMutex
	cache map[string]*AstroTimes // cache by date

	location Location
	tz       *time.Location
}

// NewCalculator creates a calculator for the given coordinates.
// An unknown timezone falls back to UTC.
func NewCalculator(loc Location) *Calculator {
	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", loc.Timezone).Msg("Failed to load timezone, using UTC")
		tz = time.UTC
	}

	log.Info().
		Str("name", loc.Name).
		Float64("lat", loc.Latitude).
		Float64("lon", loc.Longitude).
		Str("timezone", tz.String()).
		Msg("Geo calculator initialized")

	return &Calculator{
		cache:    make(map[string]*AstroTimes),
		location: loc,
		tz:       tz,
	}
}

// Location returns the configured location
func (c *Calculator) Location() Location {
	return c.location
}

// GetTimes returns astronomical times for the local calendar day containing date
func (c *Calculator) GetTimes(date time.Time) (*AstroTimes, error) {
	if c.location.Latitude < -90 || c.location.Latitude > 90 {
		return nil, fmt.Errorf("%w: latitude %v", ErrInvalidLocation, c.location.Latitude)
	}
	local := date.In(c.tz)

	// Check cache
	cacheKey := local.Format("2006-01-02")
	c.mu.RLock()
	cached, ok := c.cache[cacheKey]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	// Calculate times
	times := c.calculate(c.location.Latitude, c.location.Longitude, local, c.tz)

	// Cache result
	c.mu.Lock()
	c.cache[cacheKey] = times
	c.mu.Unlock()

	return times, nil
}

// IsNight reports whether at falls before sunrise or after sunset
func (c *Calculator) IsNight(at time.Time) (bool, error) {
	times, err := c.GetTimes(at)
	if err != nil {
		return false, err
	}
	return at.Before(times.Sunrise) || !at.Before(times.Sunset), nil
}

// calculate computes astronomical times using the NOAA sunrise equation
func (c *Calculator) calculate(lat, lon float64, date time.Time, tz *time.Location) *AstroTimes {
	// Julian day - add 0.5 because the sunrise equation expects JD at noon, not midnight
	jd := toJulianDay(date) + 0.5
	transit, dec := solarTransit(jd, lon)

	return &AstroTimes{
		Dawn:     julianToTime(hourAngleTime(transit, dec, lat, -6.0, true), tz, date), // Civil dawn
		Sunrise:  julianToTime(hourAngleTime(transit, dec, lat, -0.833, true), tz, date),
		Noon:     julianToTime(transit, tz, date),
		Sunset:   julianToTime(hourAngleTime(transit, dec, lat, -0.833, false), tz, date),
		Dusk:     julianToTime(hourAngleTime(transit, dec, lat, -6.0, false), tz, date), // Civil dusk
		Midnight: time.Date(date.Year(), date.Month(), date.Day()+1, 0, 0, 0, 0, tz),
	}
}

// toJulianDay converts a date to Julian day number
func toJulianDay(t time.Time) float64 {
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5
}

// solarTransit returns the Julian date of solar noon and the sun's declination (radians)
func solarTransit(jd, lon float64) (transit, declination float64) {
	// Mean solar noon
	n := jd - 2451545.0 + 0.0008
	jStar := n - lon/360.0

	// Solar mean anomaly
	m := math.Mod(357.5291+0.98560028*jStar, 360.0)
	mRad := radians(m)

	// Equation of center
	c := 1.9148*math.Sin(mRad) + 0.02*math.Sin(2*mRad) + 0.0003*math.Sin(3*mRad)

	// Ecliptic longitude
	lambdaRad := radians(math.Mod(m+c+180+102.9372, 360.0))

	transit = 2451545.0 + jStar + 0.0053*math.Sin(mRad) - 0.0069*math.Sin(2*lambdaRad)
	declination = math.Asin(math.Sin(lambdaRad) * math.Sin(radians(23.44)))
	return transit, declination
}

// hourAngleTime returns the Julian date when the sun crosses angle degrees
// of elevation before (rising) or after solar noon.
// Polar day and night are clamped to noon and midnight.
func hourAngleTime(transit, dec, lat, angle float64, rising bool) float64 {
	latRad := radians(lat)
	cosOmega := (math.Sin(radians(angle)) - math.Sin(latRad)*math.Sin(dec)) / (math.Cos(latRad) * math.Cos(dec))
	cosOmega = math.Max(-1, math.Min(1, cosOmega))

	omega := math.Acos(cosOmega) * 180.0 / math.Pi
	if rising {
		return transit - omega/360.0
	}
	return transit + omega/360.0
}

// julianToTime converts a Julian date to a wall-clock time on refDate in tz
func julianToTime(jd float64, tz *time.Location, refDate time.Time) time.Time {
	unixTime := (jd - 2440587.5) * 86400.0
	sec := math.Floor(unixTime)
	t := time.Unix(int64(sec), int64((unixTime-sec)*1e9)).In(tz)

	return time.Date(
		refDate.Year(), refDate.Month(), refDate.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, tz,
	)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
