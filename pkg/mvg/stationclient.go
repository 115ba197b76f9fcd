package mvg

import (
	"context"
	"fmt"
	"strings"
)

// StationClient is bound to a single resolved global station id
type StationClient struct {
	Client    *Client
	StationID string
}

// ForStation resolves either a global station id (used as is) or a free text
// query like "Universität, München" into a StationClient.
func (c *Client) ForStation(ctx context.Context, station string) (*StationClient, error) {
	station = strings.TrimSpace(station)

	if ValidStationID(station) {
		return &StationClient{Client: c, StationID: station}, nil
	}

	details, err := c.StationQuery(ctx, station)
	if err != nil {
		return nil, err
	}

	if details == nil {
		return nil, fmt.Errorf("%w: no station found for %q", ErrInvalidInput, station)
	}

	return &StationClient{Client: c, StationID: details.ID}, nil
}

func (s *StationClient) Departures(ctx context.Context, options DepartureOptions) ([]Departure, error) {
	return s.Client.Departures(ctx, s.StationID, options)
}

func (s *StationClient) Lines(ctx context.Context) ([]Line, error) {
	return s.Client.StationLines(ctx, s.StationID)
}
