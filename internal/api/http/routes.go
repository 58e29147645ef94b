package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/snow-report/internal/report"
	"github.com/i474232898/snow-report/internal/resorts"
	"github.com/i474232898/snow-report/internal/weather"
)

// upstreamTimeout bounds the provider calls made while serving one request.
const upstreamTimeout = 15 * time.Second

var validate = validator.New()

// ErrorHandler renders every handler error as a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Every request
// normalizes on demand; nothing is cached between requests.
func RegisterRoutes(app *fiber.App, service *weather.Service, registry *resorts.Registry) {
	v1 := app.Group("/api/v1")

	v1.Get("/regions", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"regions": registry.Regions(),
		})
	})

	v1.Get("/resorts", func(c *fiber.Ctx) error {
		q := listQuery{
			Region: c.Query("region"),
			Sort:   c.Query("sort", string(report.SortByTemperature)),
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if q.Region != "" && !registry.HasRegion(q.Region) {
			return fiber.NewError(fiber.StatusNotFound, "unknown region")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), upstreamTimeout)
		defer cancel()

		batch := service.Refresh(ctx, registry.InRegion(q.Region))
		stale := batch.Stale
		if stale == nil {
			stale = []string{}
		}

		return c.JSON(fiber.Map{
			"region":  q.Region,
			"sort":    q.Sort,
			"live":    len(batch.Stale) == 0,
			"stale":   stale,
			"resorts": report.Sort(batch.Resorts, report.SortKey(q.Sort)),
		})
	})

	v1.Get("/resorts/:id", func(c *fiber.Ctx) error {
		resort, err := registry.Get(c.Params("id"))
		if err != nil {
			if errors.Is(err, resorts.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no resort with the requested id")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to look up resort")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), upstreamTimeout)
		defer cancel()

		summary, err := service.Normalize(ctx, resort)
		if err != nil {
			return normalizeError(err)
		}

		merged := resort.WithSummary(summary)
		return c.JSON(fiber.Map{
			"resort":        merged,
			"totalSnowfall": merged.DailyForecast.TotalSnowfall(),
		})
	})
}

// listQuery holds query parameters for the resort list endpoint.
type listQuery struct {
	Region string `validate:"omitempty,max=64"`
	Sort   string `validate:"oneof=temp name snow"`
}

func normalizeError(err error) error {
	var missing *weather.MissingCoordinatesError
	var provider *weather.ProviderError
	switch {
	case errors.As(err, &missing):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &provider):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "weather provider timed out")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}
