package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/mvg/pkg/mvg"
)

const (
	viewBasic    = "basic"
	viewDetailed = "detailed"
)

type stationQuery struct {
	Query string `query:"query" validate:"required"`
	View  string `query:"view" validate:"omitempty,oneof=basic detailed"`
}

type nearbyQuery struct {
	Latitude  string `query:"latitude" validate:"required,latitude"`
	Longitude string `query:"longitude" validate:"required,longitude"`
	View      string `query:"view" validate:"omitempty,oneof=basic detailed"`
}

type validateQuery struct {
	Exists bool `query:"exists"`
}

func StationsRouter(router fiber.Router, services *Services) {
	router.Get("/", func(c *fiber.Ctx) error {
		return getStation(c, services)
	})
	router.Get("/nearby", func(c *fiber.Ctx) error {
		return getNearbyStation(c, services)
	})
	router.Get("/all", func(c *fiber.Ctx) error {
		return listStations(c, services)
	})
	router.Get("/ids", func(c *fiber.Ctx) error {
		return listStationIDs(c, services)
	})
	router.Get("/:identifier/validate", func(c *fiber.Ctx) error {
		return validateStationID(c, services)
	})
	router.Get("/:identifier/lines", func(c *fiber.Ctx) error {
		return getStationLines(c, services)
	})
	router.Get("/:identifier/departures", func(c *fiber.Ctx) error {
		return getStationDepartures(c, services)
	})
}

func getStation(c *fiber.Ctx, services *Services) error {
	query := stationQuery{}
	if err := c.QueryParser(&query); err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(query); err != nil {
		return sendValidationError(c, err)
	}

	station, err := services.Client.StationQuery(c.UserContext(), query.Query)
	if err != nil {
		return sendClientError(c, err)
	}
	if station == nil {
		return sendError(c, fiber.StatusNotFound, "Could not find Station matching query")
	}

	return sendView(c, query.View, station)
}

func getNearbyStation(c *fiber.Ctx, services *Services) error {
	query := nearbyQuery{}
	if err := c.QueryParser(&query); err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(query); err != nil {
		return sendValidationError(c, err)
	}

	latitude, _ := strconv.ParseFloat(query.Latitude, 64)
	longitude, _ := strconv.ParseFloat(query.Longitude, 64)

	station, err := services.Client.Nearby(c.UserContext(), latitude, longitude)
	if err != nil {
		return sendClientError(c, err)
	}
	if station == nil {
		return sendError(c, fiber.StatusNotFound, "Could not find Station near location")
	}

	return sendView(c, query.View, station)
}

func listStations(c *fiber.Ctx, services *Services) error {
	stations, err := services.Reference.Stations(c.UserContext())
	if err != nil {
		return sendClientError(c, err)
	}

	return c.JSON(stations)
}

func listStationIDs(c *fiber.Ctx, services *Services) error {
	stationIDs, err := services.Reference.StationIDs(c.UserContext())
	if err != nil {
		return sendClientError(c, err)
	}

	return c.JSON(stationIDs)
}

func validateStationID(c *fiber.Ctx, services *Services) error {
	stationID := c.Params("identifier")

	query := validateQuery{}
	if err := c.QueryParser(&query); err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	response := fiber.Map{
		"station_id": stationID,
		"valid":      mvg.ValidStationID(stationID),
	}

	if query.Exists {
		exists, err := services.Reference.StationIDExists(c.UserContext(), stationID)
		if err != nil {
			return sendClientError(c, err)
		}

		response["exists"] = exists
	}

	return c.JSON(response)
}

func getStationLines(c *fiber.Ctx, services *Services) error {
	lines, err := services.Reference.Lines(c.UserContext(), c.Params("identifier"))
	if err != nil {
		return sendClientError(c, err)
	}

	return c.JSON(lines)
}

// sendView reduces value to the fields of the requested sheriff group
func sendView(c *fiber.Ctx, view string, value any) error {
	if view == "" {
		view = viewDetailed
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{view},
	}, value)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, "Could not reduce response to view "+view)
	}

	return c.JSON(reduced)
}
