package routes

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/mvg/pkg/cachedresults"
	"github.com/travigo/mvg/pkg/mvg"
)

// Services are the backends shared by every route. Reference data goes
// through Reference so it can be cached, live data straight through Client.
type Services struct {
	Client    *mvg.Client
	Reference *cachedresults.ReferenceData
}

func NewServices(client *mvg.Client, cache *cachedresults.Cache) *Services {
	return &Services{
		Client: client,
		Reference: &cachedresults.ReferenceData{
			Client: client,
			Cache:  cache,
		},
	}
}

var validate = newValidator()

// newValidator reports fields by their query parameter name
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("query")
	})

	return v
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}

// sendClientError maps errors from the MVG client onto a response. Bad input
// is the callers fault, anything else coming back from MVG is a bad gateway.
func sendClientError(c *fiber.Ctx, err error) error {
	switch {
	case mvg.IsInvalidInput(err):
		return sendError(c, fiber.StatusBadRequest, err.Error())
	case mvg.IsAPIError(err):
		log.Error().Err(err).Str("path", c.Path()).Msg("MVG API request failed")
		return sendError(c, fiber.StatusBadGateway, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		return sendError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func sendValidationError(c *fiber.Ctx, err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		fieldError := validationErrors[0]
		return sendError(c, fiber.StatusBadRequest, "Invalid parameter "+fieldError.Field()+": failed "+fieldError.Tag())
	}

	return sendError(c, fiber.StatusBadRequest, err.Error())
}
