package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paralyuzov/food-delivery-api/internal/config"
	"github.com/paralyuzov/food-delivery-api/internal/middleware"
	"github.com/paralyuzov/food-delivery-api/internal/usecase"
)

type MenuHandler struct {
	uc     *usecase.MenuUsecase
	dishUC *usecase.DishUsecase
}

func NewMenuHandler(uc *usecase.MenuUsecase, dishUC *usecase.DishUsecase) *MenuHandler {
	return &MenuHandler{uc: uc, dishUC: dishUC}
}

func (h *MenuHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/menus/:menuId", h.detail)
	e.GET("/menus/:menuId/dishes", h.listDishes)

	admin := e.Group("/menus")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.POST("/:menuId/dishes", h.createDish)
	admin.PATCH("/:menuId", h.update)
	admin.DELETE("/:menuId", h.remove)
}

func (h *MenuHandler) detail(c echo.Context) error {
	out, err := h.uc.GetByID(c.Request().Context(), c.Param("menuId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) listDishes(c echo.Context) error {
	out, err := h.dishUC.ListByMenu(c.Request().Context(), c.Param("menuId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateMenuRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (h *MenuHandler) update(c echo.Context) error {
	var req updateMenuRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), c.Param("menuId"), usecase.UpdateMenuInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) remove(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("menuId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "menu deleted"})
}

type dishRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

func (h *MenuHandler) createDish(c echo.Context) error {
	var req dishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}

	out, err := h.dishUC.Create(c.Request().Context(), c.Param("menuId"), usecase.DishInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
