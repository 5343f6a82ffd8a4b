package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	g := app.Group("/")
	g.Post("get_values", func(c *fiber.Ctx) error {
		req, err := ParseMeterRequest(c.Body())
		if err != nil {
			return err
		}
		return c.JSON(svcs.Readings.Read(c.UserContext(), req.Zone, req.Floor))
	})
	g.Get("get_insights", func(c *fiber.Ctx) error {
		return c.JSON(svcs.Insights.Generate(c.UserContext()))
	})
}

// ErrorHandler renders every handler error as {"error": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "invalid request body",
			"details": verr.Details,
		})
	}

	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
