package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/service"
)

// NewApp builds the fiber application with middleware and routes installed.
func NewApp(svcs *service.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "campus-utility-monitor",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	// recover sits inside the logger so panics still get a log line.
	app.Use(requestid.New())
	app.Use(RequestLogger())
	app.Use(recover.New())

	Register(app, svcs)
	return app
}
