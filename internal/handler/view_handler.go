package handler

import (
	"net/http"

	"quicksupply/internal/navigation"
	"quicksupply/pkg/logger"
	"quicksupply/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TransitionRequest names a navigation action and its parameters.
type TransitionRequest struct {
	Action       string `json:"action" validate:"required"`
	SupplierName string `json:"supplier_name"`
	SupplierID   string `json:"supplier_id"`
	ProductID    string `json:"product_id"`
	Message      string `json:"message"`
	Term         string `json:"term"`
	Sector       string `json:"sector"`
}

// View returns the session's current navigation state.
func (h *Handler) View(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	return c.JSON(http.StatusOK, h.nav.Get(userID))
}

// Transition drives the view state machine for the session. Unknown
// lookups keep the current view; unknown actions are the only client
// error.
func (h *Handler) Transition(c echo.Context) error {
	log := logger.FromEcho(c)

	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	userID, _ := c.Get("user_id").(string)
	owner := sessionOwner(c.Get("user_id"), c.Get("email"))

	var fn func(navigation.State) navigation.State
	switch req.Action {
	case "become_supplier":
		_, hasDossier := h.recon.DeriveOwnProfile(owner)
		fn = func(s navigation.State) navigation.State { return s.BecomeSupplier(hasDossier) }
	case "become_buyer":
		fn = func(s navigation.State) navigation.State { return s.BecomeBuyer() }
	case "open_profile":
		supplier, found := h.recon.FindByName(req.SupplierName)
		fn = func(s navigation.State) navigation.State { return s.OpenSupplierProfile(supplier.ID, found) }
	case "open_own_profile":
		fn = func(s navigation.State) navigation.State { return s.OpenOwnProfile() }
	case "open_buyer_profile":
		fn = func(s navigation.State) navigation.State { return s.OpenBuyerProfile() }
	case "open_product":
		fn = func(s navigation.State) navigation.State { return s.OpenProductDetail(req.SupplierID, req.ProductID) }
	case "back_product":
		fn = func(s navigation.State) navigation.State { return s.BackFromProductDetail() }
	case "back_profile":
		fn = func(s navigation.State) navigation.State { return s.BackFromProfile() }
	case "open_chat":
		fn = func(s navigation.State) navigation.State { return s.OpenChat(req.SupplierID, req.Message) }
	case "close_chat":
		fn = func(s navigation.State) navigation.State { return s.CloseChat() }
	case "search":
		fn = func(s navigation.State) navigation.State { return s.SetSearch(req.Term, req.Sector) }
	case "home":
		fn = func(s navigation.State) navigation.State { return s.Home() }
	default:
		log.Warn("Unknown view action", zap.String("action", req.Action))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown action"})
	}

	state := h.nav.Apply(userID, fn)
	prometheus.RecordViewTransition(req.Action, string(state.View))

	log.Info("View transition",
		zap.String("action", req.Action),
		zap.String("view", string(state.View)))
	return c.JSON(http.StatusOK, state)
}

// Contact opens the chat panel against a supplier with the standard
// introduction message prefilled.
func (h *Handler) Contact(c echo.Context) error {
	log := logger.FromEcho(c)

	id := c.Param("id")
	supplier, found := h.recon.FindByID(id)
	if !found {
		log.Warn("Contact with unknown supplier", zap.String("id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "supplier not found"})
	}

	msg := "Hello, I'm interested in your " + supplier.Category + " products. Could you provide more details about lead times and wholesale pricing?"
	userID, _ := c.Get("user_id").(string)
	state := h.nav.Apply(userID, func(s navigation.State) navigation.State {
		return s.OpenChat(supplier.ID, msg)
	})

	return c.JSON(http.StatusOK, echo.Map{
		"recipient":       supplier,
		"initial_message": msg,
		"view":            state.View,
	})
}
