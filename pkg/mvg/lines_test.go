package mvg

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationLines(t *testing.T) {
	_, client := newFakeAPI(t, map[string]http.HandlerFunc{
		"/fib/line/station/de:09162:70": jsonResponse(`[
			{"label": "U3", "transportType": "UBAHN", "network": "swm"},
			{"label": "U6", "transportType": "UBAHN"}
		]`),
	})

	lines, err := client.Lines(context.Background(), "de:09162:70")

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "U3", lines[0].Label())
	assert.Equal(t, "UBAHN", lines[0].TransportType())
	assert.Equal(t, "swm", lines[0]["network"])
}

func TestStationLinesInvalidID(t *testing.T) {
	api, client := newFakeAPI(t, nil)

	_, err := client.StationLines(context.Background(), "de:1:1")

	assert.True(t, IsInvalidInput(err))
	assert.Equal(t, 0, api.requestCount())
}

func TestStationLinesParseError(t *testing.T) {
	_, client := newFakeAPI(t, map[string]http.HandlerFunc{
		"/fib/line/station/de:09162:70": jsonResponse(`{"label": "U3"}`),
	})

	_, err := client.StationLines(context.Background(), "de:09162:70")

	require.Error(t, err)
	assert.Equal(t, "Bad API call: Could not parse lines data", err.Error())
}

func TestAllLinesDeduplicatesInStationOrder(t *testing.T) {
	_, client := newFakeAPI(t, map[string]http.HandlerFunc{
		// unsorted on purpose, traversal follows the sorted ids
		"/zdm/mvgStationGlobalIds": jsonResponse(`["de:09162:70", "de:09162:10", "de:09162:6"]`),
		"/fib/line/station/de:09162:10": jsonResponse(`[
			{"label": "U3", "transportType": "UBAHN", "seenAt": "de:09162:10"},
			{"label": "100", "transportType": "BUS"}
		]`),
		"/fib/line/station/de:09162:6": jsonResponse(`[
			{"label": "U3", "transportType": "UBAHN", "seenAt": "de:09162:6"},
			{"label": "S1", "transportType": "SBAHN"}
		]`),
		"/fib/line/station/de:09162:70": jsonResponse(`[
			{"label": "U3", "transportType": "BUS"},
			{"label": "S1", "transportType": "SBAHN", "seenAt": "de:09162:70"}
		]`),
	})

	lines, err := client.Lines(context.Background(), "")

	require.NoError(t, err)

	var keys []string
	for _, line := range lines {
		keys = append(keys, line.Label()+"/"+line.TransportType())
	}
	assert.Equal(t, []string{"U3/UBAHN", "100/BUS", "S1/SBAHN", "U3/BUS"}, keys)
	assert.Equal(t, "de:09162:10", lines[0]["seenAt"])
	assert.Nil(t, lines[2]["seenAt"])
}

func TestAllLinesDropsFailedStations(t *testing.T) {
	_, client := newFakeAPI(t, map[string]http.HandlerFunc{
		"/zdm/mvgStationGlobalIds":     jsonResponse(`["de:09162:1", "de:09162:2", "de:09162:3"]`),
		"/fib/line/station/de:09162:1": jsonResponse(`[{"label": "U1", "transportType": "UBAHN"}]`),
		"/fib/line/station/de:09162:2": statusResponse(http.StatusInternalServerError),
		"/fib/line/station/de:09162:3": jsonResponse(`{"not": "a list"}`),
	})

	var failedStations []string
	client.OnLineFetchError = func(stationID string, err error) {
		assert.True(t, IsAPIError(err))
		failedStations = append(failedStations, stationID)
	}

	lines, err := client.AllLines(context.Background())

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "U1", lines[0].Label())
	assert.Equal(t, []string{"de:09162:2", "de:09162:3"}, failedStations)
}

func TestAllLinesEveryStationFails(t *testing.T) {
	_, client := newFakeAPI(t, map[string]http.HandlerFunc{
		"/zdm/mvgStationGlobalIds": jsonResponse(`["de:09162:1"]`),
	})

	lines, err := client.AllLines(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestAllLinesEnumerationFailure(t *testing.T) {
	_, client := newFakeAPI(t, map[string]http.HandlerFunc{
		"/zdm/mvgStationGlobalIds": statusResponse(http.StatusBadGateway),
	})

	_, err := client.AllLines(context.Background())

	assert.True(t, IsAPIError(err))
}

func TestLineKeyKeepsMissingDistinctFromEmpty(t *testing.T) {
	assert.NotEqual(t, newLineKey(Line{"label": ""}), newLineKey(Line{}))
	assert.Equal(t, newLineKey(Line{"label": "U3", "transportType": "UBAHN", "x": 1}), newLineKey(Line{"label": "U3", "transportType": "UBAHN"}))
}
