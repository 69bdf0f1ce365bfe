package webapi

import (
	"log/slog"
	"time"

	"github.com/amirasaad/onramp/pkg/provider"
	pkgonramp "github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/webapi/common"
	_ "github.com/amirasaad/onramp/webapi/docs"
	"github.com/amirasaad/onramp/webapi/onramp"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// DefaultRateLimit is the number of requests allowed per IP per second.
const DefaultRateLimit = 20

// Options configures NewApp. A zero RateLimit means DefaultRateLimit; a negative
// one disables the limiter.
type Options struct {
	Registry  *provider.Registry
	Store     pkgonramp.CustomerStore
	Logger    *slog.Logger
	RateLimit int
}

func NewApp(opts Options) *fiber.App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default to 500 if status code cannot be determined
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(recover.New())
	app.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled: true,
	}))
	if opts.RateLimit >= 0 {
		limit := opts.RateLimit
		if limit == 0 {
			limit = DefaultRateLimit
		}
		app.Use(limiter.New(limiter.Config{
			Max:        limit,
			Expiration: 1 * time.Second,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
			},
		}))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	onramp.Routes(app, opts.Registry, opts.Store, logger.With("component", "webapi"))

	return app
}
