package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paralyuzov/food-delivery-api/internal/config"
	"github.com/paralyuzov/food-delivery-api/internal/middleware"
	"github.com/paralyuzov/food-delivery-api/internal/payment"
)

// 決済セッションの状態をそのまま返す確認用API
type StripeHandler struct {
	gateway payment.Gateway
}

func NewStripeHandler(gateway payment.Gateway) *StripeHandler {
	return &StripeHandler{gateway: gateway}
}

func (h *StripeHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/stripe")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("/verify-session", h.verifySession)
}

func (h *StripeHandler) verifySession(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session_id is required"})
	}

	status, err := h.gateway.RetrieveSession(c.Request().Context(), sessionID)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id":     status.ID,
		"payment_status": status.PaymentStatus,
	})
}
