package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/paralyuzov/food-delivery-api/internal/config"
	"github.com/paralyuzov/food-delivery-api/internal/middleware"
	"github.com/paralyuzov/food-delivery-api/internal/usecase"
)

type DishHandler struct {
	uc *usecase.DishUsecase
}

func NewDishHandler(uc *usecase.DishUsecase) *DishHandler {
	return &DishHandler{uc: uc}
}

func (h *DishHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/dishes", h.list)
	e.GET("/dishes/popular", h.listPopular)
	e.GET("/dishes/category/:category", h.listByCategory)
	e.GET("/dishes/:dishId", h.detail)

	authed := e.Group("/dishes")
	authed.Use(middleware.AuthJWT(cfg))
	authed.POST("/:dishId/rate", h.rate)

	admin := e.Group("/dishes")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.PATCH("/:dishId", h.update)
	admin.DELETE("/:dishId", h.remove)
}

func (h *DishHandler) list(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DishHandler) listPopular(c echo.Context) error {
	out, err := h.uc.ListPopular(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DishHandler) listByCategory(c echo.Context) error {
	out, err := h.uc.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DishHandler) detail(c echo.Context) error {
	out, err := h.uc.GetByID(c.Request().Context(), c.Param("dishId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateDishRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	ImageURL    *string `json:"image_url"`
	Category    *string `json:"category"`
	IsAvailable *bool   `json:"is_available"`
}

func (h *DishHandler) update(c echo.Context) error {
	var req updateDishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	var price *decimal.Decimal
	if req.Price != nil {
		p, err := parsePrice(*req.Price)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
		}
		price = &p
	}

	out, err := h.uc.Update(c.Request().Context(), c.Param("dishId"), usecase.UpdateDishInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DishHandler) remove(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("dishId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "dish deleted"})
}

func (h *DishHandler) rate(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Rate(c.Request().Context(), userID, c.Param("dishId"), req.Rating)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func parsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
