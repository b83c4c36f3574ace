package handler

import (
	"net/http"

	"quicksupply/pkg/logger"
	"quicksupply/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListOrders returns the authenticated buyer's orders, newest first.
// There is no placement flow; the list is read-only.
func (h *Handler) ListOrders(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordDirectoryOperation("orders")

	userID, _ := c.Get("user_id").(string)
	orders, err := h.orders.OrdersByBuyer(c.Request().Context(), userID)
	if err != nil {
		// Same availability stance as the directory: an unreachable
		// backend yields an empty list, not an error page.
		log.Warn("Order fetch failed, returning empty list", zap.Error(err))
		return c.JSON(http.StatusOK, echo.Map{"orders": []any{}, "offline": true})
	}

	return c.JSON(http.StatusOK, echo.Map{"orders": orders, "offline": false})
}
