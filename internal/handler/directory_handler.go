package handler

import (
	"net/http"
	"strings"

	"quicksupply/internal/directory"
	"quicksupply/internal/model"
	"quicksupply/pkg/logger"
	"quicksupply/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListSuppliers returns the buyer-visible directory, filtered by the
// active search term, sector, and AI-match ids, grouped industry →
// category for rendering.
func (h *Handler) ListSuppliers(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordDirectoryOperation("list")

	term := c.QueryParam("q")
	sector := c.QueryParam("sector")
	var matchIDs []string
	if raw := c.QueryParam("match"); raw != "" {
		matchIDs = strings.Split(raw, ",")
	}

	results := h.recon.Search(term, sector, matchIDs)
	grouped := directory.Grouped(results)
	categories := make(map[model.Industry][]string, len(grouped))
	for industry, group := range grouped {
		categories[industry] = directory.Categories(group)
	}

	log.Info("Directory listed",
		zap.String("term", term),
		zap.String("sector", sector),
		zap.Int("matches", len(matchIDs)),
		zap.Int("results", len(results)))

	return c.JSON(http.StatusOK, echo.Map{
		"suppliers":  results,
		"grouped":    grouped,
		"categories": categories,
		"offline":    h.recon.Offline(),
	})
}

// GetSupplier returns one record by id.
func (h *Handler) GetSupplier(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordDirectoryOperation("get")

	id := c.Param("id")
	supplier, found := h.recon.FindByID(id)
	if !found {
		log.Warn("Supplier not found", zap.String("id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "supplier not found"})
	}
	return c.JSON(http.StatusOK, supplier)
}

// Refresh reconciles the in-memory collection with latest remote state.
// The response always succeeds with whatever state is current.
func (h *Handler) Refresh(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordDirectoryOperation("refresh")

	h.recon.Refresh(c.Request().Context())
	prometheus.SetOfflineMode(h.recon.Offline())
	prometheus.DirectorySizeGauge.Set(float64(len(h.recon.All())))

	log.Info("Directory refresh requested", zap.Bool("offline", h.recon.Offline()))
	return c.JSON(http.StatusOK, echo.Map{"offline": h.recon.Offline()})
}
