package mvg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// Line is a line record as returned by the API, all fields are passed through
type Line map[string]any

func (l Line) Label() string {
	label, _ := l["label"].(string)
	return label
}

func (l Line) TransportType() string {
	transportType, _ := l["transportType"].(string)
	return transportType
}

// lineKey identifies a line across stations. The raw JSON values are used so
// that a missing field and an empty string stay distinct.
type lineKey struct {
	label         string
	transportType string
}

func newLineKey(line Line) lineKey {
	label, _ := json.Marshal(line["label"])
	transportType, _ := json.Marshal(line["transportType"])

	return lineKey{
		label:         string(label),
		transportType: string(transportType),
	}
}

// Lines returns the lines serving a station, or with an empty station id the
// unique lines across every station
func (c *Client) Lines(ctx context.Context, stationID string) ([]Line, error) {
	if strings.TrimSpace(stationID) != "" {
		return c.StationLines(ctx, stationID)
	}

	return c.AllLines(ctx)
}

func (c *Client) StationLines(ctx context.Context, stationID string) ([]Line, error) {
	stationID = strings.TrimSpace(stationID)
	if !ValidStationID(stationID) {
		return nil, fmt.Errorf("%w: invalid format of global station id %q", ErrInvalidInput, stationID)
	}

	return c.stationLines(ctx, stationID)
}

func (c *Client) stationLines(ctx context.Context, stationID string) ([]Line, error) {
	body, err := c.execute(ctx, EndpointLineStation, nil, stationID)
	if err != nil {
		return nil, err
	}

	lines, err := decodeList[Line](body)
	if err != nil {
		return nil, newParseError("lines data", err)
	}

	return lines, nil
}

// AllLines fetches the lines of every station concurrently and merges them.
// Stations whose fetch fails are left out of the result rather than failing the
// call, they are reported through OnLineFetchError in station id order.
// Duplicates by label and transport type keep the first seen entry.
func (c *Client) AllLines(ctx context.Context) ([]Line, error) {
	stationIDs, err := c.StationIDs(ctx)
	if err != nil {
		return nil, err
	}

	stationResults := make([][]Line, len(stationIDs))
	stationErrors := make([]error, len(stationIDs))

	p := pool.New().WithMaxGoroutines(c.maxConcurrency())
	for i, stationID := range stationIDs {
		p.Go(func() {
			stationResults[i], stationErrors[i] = c.stationLines(ctx, stationID)
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	for i, err := range stationErrors {
		if err == nil {
			continue
		}

		failed++
		log.Debug().Str("station", stationIDs[i]).Err(err).Msg("Dropped station from lines aggregate")

		if c.OnLineFetchError != nil {
			c.OnLineFetchError(stationIDs[i], err)
		}
	}

	uniqueLines := []Line{}
	seenLines := map[lineKey]bool{}

	for _, lines := range stationResults {
		for _, line := range lines {
			key := newLineKey(line)
			if seenLines[key] {
				continue
			}

			seenLines[key] = true
			uniqueLines = append(uniqueLines, line)
		}
	}

	log.Debug().
		Int("stations", len(stationIDs)).
		Int("failed", failed).
		Int("lines", len(uniqueLines)).
		Msg("Aggregated lines for all stations")

	return uniqueLines, nil
}

func (c *Client) maxConcurrency() int {
	if c.MaxConcurrency <= 0 {
		return DefaultMaxConcurrency
	}

	return c.MaxConcurrency
}
