package handler

import (
	"net/http"

	"quicksupply/internal/navigation"
	"quicksupply/pkg/logger"
	"quicksupply/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MatchRequest carries the buyer's free-text requirements.
type MatchRequest struct {
	Query string `json:"query" validate:"required"`
}

// Match runs AI supplier matching over the non-owner directory entries,
// serving the cache when it holds the query, and stores the result in
// the session's navigation state.
func (h *Handler) Match(c echo.Context) error {
	log := logger.FromEcho(c)

	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	result, cached := h.cache.Get(ctx, req.Query)
	if cached {
		prometheus.MatchCacheHits.Inc()
	} else {
		prometheus.MatchCacheMisses.Inc()
		prometheus.RecordAIRequest("match")
		result = h.ai.MatchSuppliers(ctx, req.Query, h.recon.MatchCandidates())
		if len(result.IDs) == 0 {
			prometheus.RecordAIFallback("match")
		} else {
			h.cache.Set(ctx, req.Query, result)
		}
	}

	navResult := navigation.MatchResult{IDs: result.IDs}
	for _, a := range result.Analysis {
		navResult.Analysis = append(navResult.Analysis, navigation.MatchedSupplier{Name: a.Name, Reason: a.Reason})
	}

	userID, _ := c.Get("user_id").(string)
	state := h.nav.Apply(userID, func(s navigation.State) navigation.State {
		return s.SetSearch(req.Query, "").ApplyMatch(navResult)
	})
	prometheus.RecordViewTransition("ai_match", string(state.View))

	log.Info("AI match completed",
		zap.String("query", req.Query),
		zap.Bool("cached", cached),
		zap.Int("matches", len(result.IDs)))
	return c.JSON(http.StatusOK, echo.Map{
		"ids":      result.IDs,
		"analysis": result.Analysis,
		"view":     state.View,
	})
}

// ChatRequest is one buyer message to a supplier.
type ChatRequest struct {
	SupplierID string `json:"supplier_id" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

// Chat simulates the supplier's reply in the messaging panel. An
// unknown supplier is a lookup miss, answered with a canned line rather
// than an error.
func (h *Handler) Chat(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	supplier, found := h.recon.FindByID(req.SupplierID)
	if !found {
		log.Warn("Chat with unknown supplier", zap.String("supplier_id", req.SupplierID))
		return c.JSON(http.StatusOK, echo.Map{
			"reply": "Thank you for your message. We have received your inquiry and will respond as soon as possible.",
		})
	}

	prometheus.RecordAIRequest("chat")
	reply := h.ai.ChatReply(c.Request().Context(), req.Message, supplier)

	log.Info("Chat reply generated", zap.String("supplier", supplier.Name))
	return c.JSON(http.StatusOK, echo.Map{"reply": reply})
}

// AdviceRequest is a free-form sourcing question.
type AdviceRequest struct {
	Query string `json:"query" validate:"required"`
}

// Advice answers a sourcing question with directory context and
// grounded external links.
func (h *Handler) Advice(c echo.Context) error {
	log := logger.FromEcho(c)

	var req AdviceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	prometheus.RecordAIRequest("advice")
	advice := h.ai.SourcingAdvice(c.Request().Context(), req.Query, h.recon.MatchCandidates())

	log.Info("Sourcing advice generated", zap.Int("links", len(advice.Links)))
	return c.JSON(http.StatusOK, advice)
}
