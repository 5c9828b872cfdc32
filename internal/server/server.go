package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/paralyuzov/food-delivery-api/internal/config"
	"github.com/paralyuzov/food-delivery-api/internal/handler"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Restaurant *handler.RestaurantHandler
	Menu       *handler.MenuHandler
	Dish       *handler.DishHandler
	Order      *handler.OrderHandler
	Stripe     *handler.StripeHandler
	Admin      *handler.AdminHandler
}

func New(cfg config.Config, logger zerolog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e, cfg)
	h.User.RegisterRoutes(e, cfg)
	h.Restaurant.RegisterRoutes(e, cfg)
	h.Menu.RegisterRoutes(e, cfg)
	h.Dish.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Stripe.RegisterRoutes(e, cfg)
	h.Admin.RegisterRoutes(e, cfg)

	return e
}

func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			evt := logger.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = logger.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	})
}
