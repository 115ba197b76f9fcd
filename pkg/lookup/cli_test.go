package lookup

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/mvg/pkg/mvg"
	"github.com/urfave/cli/v2"
)

const departuresResponse = `[
	{"plannedDepartureTime": 1700000000000, "realtimeDepartureTime": 1700000060000, "label": "U3", "destination": "Fürstenried West", "transportType": "UBAHN", "cancelled": false},
	{"plannedDepartureTime": 1700000120000, "realtimeDepartureTime": 1700000120000, "label": "S1", "destination": "Freising", "transportType": "SBAHN", "cancelled": false}
]`

// newUpstream fakes the MVG API and points the config at it. The returned
// function gives the query of the last departure request.
func newUpstream(t *testing.T) func() url.Values {
	t.Helper()

	var mu sync.Mutex
	var departureQuery url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/fib/location":
			w.Write([]byte(`[{"type": "STATION", "globalId": "de:09162:2", "name": "Marienplatz", "place": "München", "latitude": 48.137, "longitude": 11.575}]`))
		case "/fib/departure":
			mu.Lock()
			departureQuery = r.URL.Query()
			mu.Unlock()
			w.Write([]byte(departuresResponse))
		case "/zdm/mvgStationGlobalIds":
			w.Write([]byte(`["de:09162:6", "de:09162:2"]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	t.Setenv("MVG_CONFIG", "")
	t.Setenv("MVG_FIB_URL", server.URL+"/fib")
	t.Setenv("MVG_ZDM_URL", server.URL+"/zdm")

	return func() url.Values {
		mu.Lock()
		defer mu.Unlock()

		return departureQuery
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buffer bytes.Buffer
	app := &cli.App{
		Name:   "mvg",
		Writer: &buffer,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
		},
		Commands: []*cli.Command{RegisterCLI()},
	}

	err := app.Run(append([]string{"mvg", "lookup"}, args...))

	return buffer.String(), err
}

func TestLookupStation(t *testing.T) {
	newUpstream(t)

	out, err := run(t, "station", "Marienplatz")
	require.NoError(t, err)

	var station mvg.Station
	require.NoError(t, json.Unmarshal([]byte(out), &station))
	assert.Equal(t, "de:09162:2", station.ID)
	assert.Equal(t, "Marienplatz", station.Name)
}

func TestLookupStationCSV(t *testing.T) {
	newUpstream(t)

	out, err := run(t, "station", "--format", "csv", "Marienplatz")

	require.NoError(t, err)
	assert.Equal(t, "id,name,place,latitude,longitude\nde:09162:2,Marienplatz,München,48.137,11.575\n", out)
}

func TestLookupDepartures(t *testing.T) {
	departureQuery := newUpstream(t)

	out, err := run(t, "departures", "--limit", "2", "--offset", "PT5M", "--types", "ubahn,sbahn", "--filter", `type == "U-Bahn"`, "Marienplatz")
	require.NoError(t, err)

	var departures []mvg.Departure
	require.NoError(t, json.Unmarshal([]byte(out), &departures))
	require.Len(t, departures, 1)
	assert.Equal(t, "U3", departures[0].Line)
	assert.Equal(t, int64(1700000060), departures[0].Time)

	query := departureQuery()
	assert.Equal(t, "de:09162:2", query.Get("globalId"))
	assert.Equal(t, "2", query.Get("limit"))
	assert.Equal(t, "5", query.Get("offsetInMinutes"))
	assert.Equal(t, "UBAHN,SBAHN", query.Get("transportTypes"))
}

func TestLookupDeparturesInvalidOptions(t *testing.T) {
	newUpstream(t)

	_, err := run(t, "departures", "--types", "rocket", "de:09162:2")
	assert.True(t, mvg.IsInvalidInput(err))

	_, err = run(t, "departures", "--filter", "line ==", "de:09162:2")
	assert.True(t, mvg.IsInvalidInput(err))

	_, err = run(t, "departures", "--offset", "soon", "de:09162:2")
	assert.Error(t, err)
}

func TestLookupValidate(t *testing.T) {
	newUpstream(t)

	out, err := run(t, "validate", "--exists", "de:09162:2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"station_id": "de:09162:2", "valid": true, "exists": true}`, out)

	out, err = run(t, "validate", "Marienplatz")
	require.NoError(t, err)
	assert.JSONEq(t, `{"station_id": "Marienplatz", "valid": false}`, out)
}

func TestLookupStationIDsYAML(t *testing.T) {
	newUpstream(t)

	out, err := run(t, "station-ids", "--format", "yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "de:09162:2")
	assert.Contains(t, out, "de:09162:6")
}

func TestLookupUpstreamFailure(t *testing.T) {
	newUpstream(t)

	_, err := run(t, "messages")

	assert.True(t, mvg.IsAPIError(err))
}

func TestLookupUnknownFormat(t *testing.T) {
	newUpstream(t)

	_, err := run(t, "station", "--format", "xml", "Marienplatz")

	assert.True(t, mvg.IsInvalidInput(err))
}
