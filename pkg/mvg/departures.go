package mvg

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type Departure struct {
	Time        int64    `json:"time" csv:"time" expr:"time" groups:"basic,detailed"`
	Planned     int64    `json:"planned" csv:"planned" expr:"planned" groups:"basic,detailed"`
	Line        string   `json:"line" csv:"line" expr:"line" groups:"basic,detailed"`
	Destination string   `json:"destination" csv:"destination" expr:"destination" groups:"basic,detailed"`
	Type        string   `json:"type" csv:"type" expr:"type" groups:"basic,detailed"`
	Icon        string   `json:"icon" csv:"icon" expr:"icon" groups:"detailed"`
	Cancelled   bool     `json:"cancelled" csv:"cancelled" expr:"cancelled" groups:"basic,detailed"`
	Messages    []string `json:"messages" csv:"-" expr:"messages" groups:"detailed"`
}

type DepartureOptions struct {
	// Number of departures, DefaultLimit when not positive. The API caps this at 100.
	Limit int
	// Offset in minutes, eg. the walking time to the station
	Offset int
	// Products to include, every product except SEV when nil
	TransportTypes []TransportType
}

type departureRecord struct {
	RealtimeDepartureTime float64  `json:"realtimeDepartureTime"`
	PlannedDepartureTime  float64  `json:"plannedDepartureTime"`
	Label                 string   `json:"label"`
	Destination           string   `json:"destination"`
	TransportType         string   `json:"transportType"`
	Cancelled             bool     `json:"cancelled"`
	Messages              []string `json:"messages"`
}

func (r departureRecord) toDeparture() Departure {
	// missing and unknown products both fall back to BAHN
	display := LookupTransportType(r.TransportType).Display()

	messages := r.Messages
	if messages == nil {
		messages = []string{}
	}

	return Departure{
		Time:        millisecondsToSeconds(r.RealtimeDepartureTime),
		Planned:     millisecondsToSeconds(r.PlannedDepartureTime),
		Line:        r.Label,
		Destination: r.Destination,
		Type:        display.Name,
		Icon:        display.Icon,
		Cancelled:   r.Cancelled,
		Messages:    messages,
	}
}

func millisecondsToSeconds(milliseconds float64) int64 {
	return int64(milliseconds / 1000)
}

// Departures retrieves the next departures for a global station id
func (c *Client) Departures(ctx context.Context, stationID string, options DepartureOptions) ([]Departure, error) {
	stationID = strings.TrimSpace(stationID)
	if !ValidStationID(stationID) {
		return nil, fmt.Errorf("%w: invalid format of global station id %q", ErrInvalidInput, stationID)
	}

	limit := options.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	transportTypes := options.TransportTypes
	if transportTypes == nil {
		transportTypes = AllTransportTypes()
	}

	body, err := c.execute(ctx, EndpointDeparture, map[string]string{
		"globalId":        stationID,
		"offsetInMinutes": strconv.Itoa(options.Offset),
		"limit":           strconv.Itoa(limit),
		"transportTypes":  joinTransportTypes(transportTypes),
	}, "")
	if err != nil {
		return nil, err
	}

	records, err := decodeList[departureRecord](body)
	if err != nil {
		return nil, &APIError{
			Message: "Bad MVG API call: Invalid departure data",
			Err:     err,
		}
	}

	departures := make([]Departure, len(records))
	for i, record := range records {
		departures[i] = record.toDeparture()
	}

	return departures, nil
}
