package mvg

import (
	"fmt"
	"strings"
)

type TransportType string

//goland:noinspection GoUnusedConst
const (
	TransportTypeBahn        TransportType = "BAHN"
	TransportTypeSBahn       TransportType = "SBAHN"
	TransportTypeUBahn       TransportType = "UBAHN"
	TransportTypeTram        TransportType = "TRAM"
	TransportTypeBus         TransportType = "BUS"
	TransportTypeRegionalBus TransportType = "REGIONAL_BUS"
	TransportTypeSEV         TransportType = "SEV"
	TransportTypeSchiff      TransportType = "SCHIFF"
)

type TransportTypeDisplay struct {
	Name string
	Icon string
}

var transportTypeOrder = []TransportType{
	TransportTypeBahn,
	TransportTypeSBahn,
	TransportTypeUBahn,
	TransportTypeTram,
	TransportTypeBus,
	TransportTypeRegionalBus,
	TransportTypeSEV,
	TransportTypeSchiff,
}

var transportTypeDisplays = map[TransportType]TransportTypeDisplay{
	TransportTypeBahn:        {Name: "Bahn", Icon: "mdi:train"},
	TransportTypeSBahn:       {Name: "S-Bahn", Icon: "mdi:subway-variant"},
	TransportTypeUBahn:       {Name: "U-Bahn", Icon: "mdi:subway"},
	TransportTypeTram:        {Name: "Tram", Icon: "mdi:tram"},
	TransportTypeBus:         {Name: "Bus", Icon: "mdi:bus"},
	TransportTypeRegionalBus: {Name: "Regionalbus", Icon: "mdi:bus"},
	TransportTypeSEV:         {Name: "SEV", Icon: "mdi:taxi"},
	TransportTypeSchiff:      {Name: "Schiff", Icon: "mdi:ferry"},
}

func (t TransportType) Valid() bool {
	_, exists := transportTypeDisplays[t]
	return exists
}

func (t TransportType) Display() TransportTypeDisplay {
	return transportTypeDisplays[LookupTransportType(string(t))]
}

// LookupTransportType maps an upstream product code onto the known set.
// Unrecognised codes are treated as BAHN.
func LookupTransportType(code string) TransportType {
	transportType := TransportType(code)
	if !transportType.Valid() {
		return TransportTypeBahn
	}

	return transportType
}

// AllTransportTypes returns every product except the SEV replacement service
func AllTransportTypes() []TransportType {
	var transportTypes []TransportType
	for _, transportType := range transportTypeOrder {
		if transportType != TransportTypeSEV {
			transportTypes = append(transportTypes, transportType)
		}
	}

	return transportTypes
}

func ParseTransportTypes(value string) ([]TransportType, error) {
	var transportTypes []TransportType

	for _, name := range strings.Split(value, ",") {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		transportType := TransportType(name)
		if !transportType.Valid() {
			return nil, fmt.Errorf("%w: unknown transport type %q", ErrInvalidInput, name)
		}

		transportTypes = append(transportTypes, transportType)
	}

	if len(transportTypes) == 0 {
		return nil, fmt.Errorf("%w: no transport types given", ErrInvalidInput)
	}

	return transportTypes, nil
}

func joinTransportTypes(transportTypes []TransportType) string {
	names := make([]string, len(transportTypes))
	for i, transportType := range transportTypes {
		names[i] = string(transportType)
	}

	return strings.Join(names, ",")
}
