package cachedresults

import (
	"context"
	"fmt"
	"strings"

	"github.com/travigo/mvg/pkg/mvg"
	"golang.org/x/exp/slices"
)

// ReferenceData serves the slow moving MVG data (station ids, the station
// catalogue and lines) through the cache. Departures and messages are live and
// always go straight to the client.
type ReferenceData struct {
	Client *mvg.Client
	Cache  *Cache
}

func (r *ReferenceData) StationIDs(ctx context.Context) ([]string, error) {
	return Remember(ctx, r.Cache, "station_ids", r.Client.StationIDs)
}

func (r *ReferenceData) Stations(ctx context.Context) ([]mvg.CatalogueStation, error) {
	return Remember(ctx, r.Cache, "stations", r.Client.Stations)
}

func (r *ReferenceData) Lines(ctx context.Context, stationID string) ([]mvg.Line, error) {
	stationID = strings.TrimSpace(stationID)

	if stationID == "" {
		return Remember(ctx, r.Cache, "lines:all", r.Client.AllLines)
	}

	if !mvg.ValidStationID(stationID) {
		return nil, fmt.Errorf("%w: invalid format of global station id %q", mvg.ErrInvalidInput, stationID)
	}

	return Remember(ctx, r.Cache, "lines:"+stationID, func(ctx context.Context) ([]mvg.Line, error) {
		return r.Client.StationLines(ctx, stationID)
	})
}

func (r *ReferenceData) StationIDExists(ctx context.Context, stationID string) (bool, error) {
	if !mvg.ValidStationID(stationID) {
		return false, nil
	}

	stationIDs, err := r.StationIDs(ctx)
	if err != nil {
		return false, err
	}

	// cached ids keep the sorted order of mvg.Client.StationIDs
	_, found := slices.BinarySearch(stationIDs, stationID)

	return found, nil
}
