package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paralyuzov/food-delivery-api/internal/config"
	"github.com/paralyuzov/food-delivery-api/internal/middleware"
	"github.com/paralyuzov/food-delivery-api/internal/usecase"
)

type RestaurantHandler struct {
	uc     *usecase.RestaurantUsecase
	menuUC *usecase.MenuUsecase
}

func NewRestaurantHandler(uc *usecase.RestaurantUsecase, menuUC *usecase.MenuUsecase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc, menuUC: menuUC}
}

func (h *RestaurantHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/restaurants", h.list)
	e.GET("/restaurants/popular", h.listPopular)
	e.GET("/restaurants/:id", h.detail)
	e.GET("/restaurants/:id/menus", h.listMenus)

	authed := e.Group("/restaurants")
	authed.Use(middleware.AuthJWT(cfg))
	authed.POST("/:id/rate", h.rate)

	admin := e.Group("/restaurants")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.POST("", h.create)
	admin.POST("/:id/menus", h.createMenu)
	admin.PATCH("/:id", h.update)
	admin.DELETE("/:id", h.remove)
}

func (h *RestaurantHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) listPopular(c echo.Context) error {
	out, err := h.uc.ListPopular(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) detail(c echo.Context) error {
	out, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) listMenus(c echo.Context) error {
	out, err := h.menuUC.ListByRestaurant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type restaurantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ImageURL    string `json:"image_url"`
}

func (h *RestaurantHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

type menuRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *RestaurantHandler) createMenu(c echo.Context) error {
	var req menuRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.menuUC.Create(c.Request().Context(), c.Param("id"), usecase.MenuInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

type updateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

func (h *RestaurantHandler) update(c echo.Context) error {
	var req updateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), c.Param("id"), usecase.UpdateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) remove(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "restaurant deleted"})
}

type rateRequest struct {
	Rating int `json:"rating"`
}

func (h *RestaurantHandler) rate(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Rate(c.Request().Context(), userID, c.Param("id"), req.Rating)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
