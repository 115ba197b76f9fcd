package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/mvg/pkg/filter"
	"github.com/travigo/mvg/pkg/mvg"
	"github.com/travigo/mvg/pkg/util"
)

type departuresQuery struct {
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset string `query:"offset"`
	Types  string `query:"types"`
	Filter string `query:"filter"`
	View   string `query:"view" validate:"omitempty,oneof=basic detailed"`
}

func (q departuresQuery) options() (mvg.DepartureOptions, error) {
	options := mvg.DepartureOptions{
		Limit: q.Limit,
	}

	if q.Offset != "" {
		offset, err := util.ParseOffsetMinutes(q.Offset)
		if err != nil {
			return options, err
		}
		options.Offset = offset
	}

	if q.Types != "" {
		transportTypes, err := mvg.ParseTransportTypes(q.Types)
		if err != nil {
			return options, err
		}
		options.TransportTypes = transportTypes
	}

	return options, nil
}

// getStationDepartures accepts either a global station id or a free text
// station name which is resolved first
func getStationDepartures(c *fiber.Ctx, services *Services) error {
	query := departuresQuery{}
	if err := c.QueryParser(&query); err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(query); err != nil {
		return sendValidationError(c, err)
	}

	options, err := query.options()
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	var departureFilter *filter.DepartureFilter
	if query.Filter != "" {
		if departureFilter, err = filter.CompileDepartureFilter(query.Filter); err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	station, err := services.Client.ForStation(c.UserContext(), c.Params("identifier"))
	if err != nil {
		if mvg.IsInvalidInput(err) {
			return sendError(c, fiber.StatusNotFound, "Could not find Station matching Station Identifier")
		}

		return sendClientError(c, err)
	}

	departures, err := station.Departures(c.UserContext(), options)
	if err != nil {
		return sendClientError(c, err)
	}

	departures, err = departureFilter.Apply(departures)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	return sendView(c, query.View, departures)
}
