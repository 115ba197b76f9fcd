package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

var offsetReference = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseOffsetMinutes accepts either a whole number of minutes ("5") or an
// ISO-8601 duration ("PT5M", "PT1H30M") and returns the offset in minutes
func ParseOffsetMinutes(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	if minutes, err := strconv.Atoi(value); err == nil {
		return minutes, nil
	}

	duration, err := iso8601.ParseISO8601(strings.ToUpper(value))
	if err != nil {
		return 0, fmt.Errorf("offset %q is neither minutes nor an ISO-8601 duration", value)
	}

	return int(duration.Shift(offsetReference).Sub(offsetReference).Minutes()), nil
}
