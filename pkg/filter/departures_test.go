package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/mvg/pkg/mvg"
)

var departures = []mvg.Departure{
	{Time: 1700000000, Planned: 1700000000, Line: "U3", Destination: "Fürstenried West", Type: "U-Bahn"},
	{Time: 1700000120, Planned: 1700000060, Line: "S1", Destination: "Freising", Type: "S-Bahn", Messages: []string{"Delay"}},
	{Time: 1700000300, Planned: 1700000300, Line: "U6", Destination: "Klinikum Großhadern", Type: "U-Bahn", Cancelled: true},
}

func TestDepartureFilter(t *testing.T) {
	tests := []struct {
		expression string
		lines      []string
	}{
		{`type == "U-Bahn"`, []string{"U3", "U6"}},
		{`type == "U-Bahn" && !cancelled`, []string{"U3"}},
		{`time > planned`, []string{"S1"}},
		{`len(messages) > 0`, []string{"S1"}},
		{`line startsWith "X"`, []string{}},
		{`destination contains "Freising" || line == "U3"`, []string{"U3", "S1"}},
	}

	for _, test := range tests {
		t.Run(test.expression, func(t *testing.T) {
			departureFilter, err := CompileDepartureFilter(test.expression)
			require.NoError(t, err)

			filtered, err := departureFilter.Apply(departures)
			require.NoError(t, err)

			lines := []string{}
			for _, departure := range filtered {
				lines = append(lines, departure.Line)
			}
			assert.Equal(t, test.lines, lines)
		})
	}
}

func TestDepartureFilterInvalid(t *testing.T) {
	for _, expression := range []string{"", "   ", `line ==`, `unknownField == 1`, `line`} {
		_, err := CompileDepartureFilter(expression)

		assert.Error(t, err, expression)
		assert.True(t, mvg.IsInvalidInput(err), expression)
	}
}

func TestNilDepartureFilterKeepsEverything(t *testing.T) {
	var departureFilter *DepartureFilter

	filtered, err := departureFilter.Apply(departures)

	require.NoError(t, err)
	assert.Equal(t, departures, filtered)
}
