package routes

import "github.com/gofiber/fiber/v2"

func LinesRouter(router fiber.Router, services *Services) {
	router.Get("/", func(c *fiber.Ctx) error {
		lines, err := services.Reference.Lines(c.UserContext(), "")
		if err != nil {
			return sendClientError(c, err)
		}

		return c.JSON(lines)
	})
}
