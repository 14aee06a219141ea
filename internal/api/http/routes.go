package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/http-temperature-accessory/internal/accessory"
	"github.com/i474232898/http-temperature-accessory/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. These are the
// pull-style surface a host uses: the current reading, the recent history,
// the service list, and the identify hook.
func RegisterRoutes(app *fiber.App, acc *accessory.Accessory, poller *accessory.Poller, readings accessory.Store) {
	v1 := app.Group("/api/v1")

	v1.Get("/reading", func(c *fiber.Ctx) error {
		reading := poller.CurrentReading()

		resp := fiber.Map{
			"name":        acc.Info().Name,
			"temperature": reading.Temperature,
		}
		if acc.HumidityEnabled() {
			resp["humidity"] = reading.Humidity
		}
		if !reading.ObservedAt.IsZero() {
			resp["observedAt"] = reading.ObservedAt
		}

		return c.JSON(resp)
	})

	v1.Get("/reading/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		history, err := readings.Range(req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no readings for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch reading history")
		}

		return c.JSON(fiber.Map{
			"from":     req.From,
			"to":       req.To,
			"readings": history,
		})
	})

	v1.Get("/services", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"info":     acc.Info(),
			"services": acc.Services(),
		})
	})

	v1.Post("/identify", func(c *fiber.Ctx) error {
		acc.Identify()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
