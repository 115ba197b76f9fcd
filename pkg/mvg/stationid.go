package mvg

import (
	"context"
	"regexp"

	"golang.org/x/exp/slices"
)

// Global station ids follow VDV recommendation 432, eg. de:09162:70
var stationIDRegex = regexp.MustCompile(`^de:\d{2,5}:\d+$`)

// ValidStationID checks the format of a global station id without any network access
func ValidStationID(stationID string) bool {
	return stationIDRegex.MatchString(stationID)
}

// StationIDExists validates the format and then checks the id against the full
// list of station ids published by the API. Failing to fetch that list is an
// APIError, never a silent true.
func (c *Client) StationIDExists(ctx context.Context, stationID string) (bool, error) {
	if !ValidStationID(stationID) {
		return false, nil
	}

	stationIDs, err := c.StationIDs(ctx)
	if err != nil {
		return false, err
	}

	_, found := slices.BinarySearch(stationIDs, stationID)

	return found, nil
}
