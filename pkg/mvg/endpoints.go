package mvg

import "golang.org/x/exp/slices"

type Base string

const (
	BaseFIB Base = "https://www.mvg.de/api/fib/v3"
	BaseZDM Base = "https://www.mvg.de/.rest/zdm"
)

type Endpoint int

const (
	EndpointLocation Endpoint = iota
	EndpointNearby
	EndpointDeparture
	EndpointLineStation
	EndpointStationIDs
	EndpointStations
	EndpointLines
	EndpointMessage
)

type EndpointDefinition struct {
	Name      string
	Base      Base
	Path      string
	Args      []string
	PathParam bool
}

var endpointDefinitions = map[Endpoint]EndpointDefinition{
	EndpointLocation: {
		Name: "FIB_LOCATION",
		Base: BaseFIB,
		Path: "/location",
		Args: []string{"query"},
	},
	EndpointNearby: {
		Name: "FIB_NEARBY",
		Base: BaseFIB,
		Path: "/station/nearby",
		Args: []string{"latitude", "longitude"},
	},
	EndpointDeparture: {
		Name: "FIB_DEPARTURE",
		Base: BaseFIB,
		Path: "/departure",
		Args: []string{"globalId", "limit", "offsetInMinutes", "transportTypes"},
	},
	EndpointLineStation: {
		Name:      "FIB_LINE_STATION",
		Base:      BaseFIB,
		Path:      "/line/station",
		PathParam: true,
	},
	EndpointStationIDs: {
		Name: "ZDM_STATION_IDS",
		Base: BaseZDM,
		Path: "/mvgStationGlobalIds",
	},
	EndpointStations: {
		Name: "ZDM_STATIONS",
		Base: BaseZDM,
		Path: "/stations",
	},
	EndpointLines: {
		Name: "ZDM_LINES",
		Base: BaseZDM,
		Path: "/lines",
	},
	EndpointMessage: {
		Name: "FIB_MESSAGE",
		Base: BaseFIB,
		Path: "/message",
	},
}

func (e Endpoint) Definition() (EndpointDefinition, bool) {
	definition, exists := endpointDefinitions[e]
	return definition, exists
}

func (e Endpoint) String() string {
	if definition, exists := endpointDefinitions[e]; exists {
		return definition.Name
	}

	return "UNKNOWN"
}

// Endpoints lists every registered endpoint in declaration order
func Endpoints() []Endpoint {
	return []Endpoint{
		EndpointLocation,
		EndpointNearby,
		EndpointDeparture,
		EndpointLineStation,
		EndpointStationIDs,
		EndpointStations,
		EndpointLines,
		EndpointMessage,
	}
}

func (d EndpointDefinition) acceptsArg(name string) bool {
	return slices.Contains(d.Args, name)
}
