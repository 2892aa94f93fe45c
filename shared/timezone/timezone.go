// Package timezone pins every wall-clock reading to the clinic's timezone,
// configured by APP_TIMEZONE. Calendar days, hold expiry and "today" are all
// computed here so the server's own zone never leaks in.
package timezone

import (
	"clinic/config"
	"sync"
	"time"
	_ "time/tzdata" //nolint:revive

	"github.com/rs/zerolog/log"
)

const DefaultName = "Asia/Tehran"

var (
	once        sync.Once
	appLocation *time.Location
)

func load() {
	name := config.Get().App.Timezone
	if name == "" {
		name = DefaultName
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to " + DefaultName)

		loc, _ = time.LoadLocation(DefaultName)
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// GetLocation returns the application timezone, loading it on first use.
func GetLocation() *time.Location {
	once.Do(load)

	return appLocation
}

// Now is time.Now in the application timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads a wall-clock value as application time.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
