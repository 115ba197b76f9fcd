package mvg

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

const locationTypeStation = "STATION"

type Station struct {
	ID        string  `json:"id" csv:"id" groups:"basic,detailed"`
	Name      string  `json:"name" csv:"name" groups:"basic,detailed"`
	Place     string  `json:"place" csv:"place" groups:"basic,detailed"`
	Latitude  float64 `json:"latitude" csv:"latitude" groups:"detailed"`
	Longitude float64 `json:"longitude" csv:"longitude" groups:"detailed"`
}

// CatalogueStation is a station entry from the reference data API, passed through untouched
type CatalogueStation map[string]any

type location struct {
	Type      string  `json:"type"`
	GlobalID  string  `json:"globalId"`
	Name      string  `json:"name"`
	Place     string  `json:"place"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// firstStation returns the first STATION entry, skipping POIs, addresses etc.
func firstStation(locations []location) *Station {
	for _, location := range locations {
		if location.Type == locationTypeStation {
			return &Station{
				ID:        location.GlobalID,
				Name:      location.Name,
				Place:     location.Place,
				Latitude:  location.Latitude,
				Longitude: location.Longitude,
			}
		}
	}

	return nil
}

// StationQuery finds a station by name and place, eg. "Hauptbahnhof, München".
// A nil station with a nil error means nothing matched.
func (c *Client) StationQuery(ctx context.Context, query string) (*Station, error) {
	body, err := c.execute(ctx, EndpointLocation, map[string]string{
		"query": strings.TrimSpace(query),
	}, "")
	if err != nil {
		return nil, err
	}

	locations, err := decodeList[location](body)
	if err != nil {
		return nil, newParseError("station data", err)
	}

	return firstStation(locations), nil
}

// Nearby finds the nearest station to a coordinate
func (c *Client) Nearby(ctx context.Context, latitude float64, longitude float64) (*Station, error) {
	body, err := c.execute(ctx, EndpointNearby, map[string]string{
		"latitude":  strconv.FormatFloat(latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(longitude, 'f', -1, 64),
	}, "")
	if err != nil {
		return nil, err
	}

	locations, err := decodeList[location](body)
	if err != nil {
		return nil, newParseError("nearby station data", err)
	}

	return firstStation(locations), nil
}

// StationIDs returns every global station id known to the API in ascending order
func (c *Client) StationIDs(ctx context.Context) ([]string, error) {
	body, err := c.execute(ctx, EndpointStationIDs, nil, "")
	if err != nil {
		return nil, err
	}

	stationIDs, err := decodeList[string](body)
	if err != nil {
		return nil, newParseError("station data", err)
	}

	slices.Sort(stationIDs)

	return stationIDs, nil
}

func (c *Client) Stations(ctx context.Context) ([]CatalogueStation, error) {
	body, err := c.execute(ctx, EndpointStations, nil, "")
	if err != nil {
		return nil, err
	}

	stations, err := decodeList[CatalogueStation](body)
	if err != nil {
		return nil, newParseError("station data", err)
	}

	return stations, nil
}
