package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports service liveness and the directory's offline flag.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"offline": h.recon.Offline(),
	})
}
