package routes

import "github.com/gofiber/fiber/v2"

// MessagesRouter serves the live service messages, these are never cached
func MessagesRouter(router fiber.Router, services *Services) {
	router.Get("/", func(c *fiber.Ctx) error {
		messages, err := services.Client.Messages(c.UserContext())
		if err != nil {
			return sendClientError(c, err)
		}

		return c.JSON(messages)
	})
}
