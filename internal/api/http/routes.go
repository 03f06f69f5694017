package httpapi

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/citywx/weather-lookup/internal/lookup"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *lookup.Service, states lookup.StateStore) {
	v1 := app.Group("/api/v1")

	v1.Post("/lookup", func(c *fiber.Ctx) error {
		req, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Whitespace-only input is silently ignored: no state change,
		// no outbound request.
		q := strings.TrimSpace(req.City)
		if q == "" {
			return c.SendStatus(fiber.StatusNoContent)
		}

		snapshot := service.Lookup(c.UserContext(), q)
		return c.JSON(snapshot)
	})

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(states.View())
	})
}

// cityQuery holds the lookup query parameter.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	var q cityQuery
	q.City = c.Query("city")

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
