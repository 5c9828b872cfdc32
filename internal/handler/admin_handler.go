package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paralyuzov/food-delivery-api/internal/config"
	"github.com/paralyuzov/food-delivery-api/internal/middleware"
	"github.com/paralyuzov/food-delivery-api/internal/usecase"
)

type AdminHandler struct {
	uc *usecase.AdminUsecase
}

func NewAdminHandler(uc *usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/dashboard")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())
	g.GET("/stats", h.stats)
}

func (h *AdminHandler) stats(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
