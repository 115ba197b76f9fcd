package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/mvg/pkg/api/routes"
)

func NewApp(services *routes.Services) *fiber.App {
	webApp := fiber.New(fiber.Config{
		AppName:      "mvg",
		UnescapePath: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/mvg")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), services)
	routes.LinesRouter(group.Group("/lines"), services)
	routes.MessagesRouter(group.Group("/messages"), services)

	return webApp
}

func SetupServer(listen string, services *routes.Services) error {
	return NewApp(services).Listen(listen)
}
