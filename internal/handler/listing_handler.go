package handler

import (
	"net/http"

	"quicksupply/internal/ai"
	"quicksupply/internal/directory"
	"quicksupply/internal/model"
	"quicksupply/internal/navigation"
	"quicksupply/pkg/logger"
	"quicksupply/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductPayload is one catalog item in a listing submission.
type ProductPayload struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	MOQ         string   `json:"moq"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// ListingRequest is the create/update payload for a directory listing.
// An empty edit_target_id means a new listing.
type ListingRequest struct {
	EditTargetID string           `json:"edit_target_id"`
	Name         string           `json:"name"`
	Industry     model.Industry   `json:"industry"`
	Category     string           `json:"category"`
	Location     string           `json:"location"`
	Description  string           `json:"description"`
	ContactEmail string           `json:"contact_email"`
	ImageURL     string           `json:"image_url"`
	Products     []ProductPayload `json:"products" validate:"dive"`
}

func (req *ListingRequest) toSupplier() model.Supplier {
	item := model.Supplier{
		Name:         req.Name,
		Industry:     req.Industry,
		Category:     req.Category,
		Location:     req.Location,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ImageURL:     req.ImageURL,
	}
	for _, p := range req.Products {
		item.Products = append(item.Products, model.Product{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			MOQ:         p.MOQ,
			Category:    p.Category,
			Images:      p.Images,
		})
	}
	return item
}

// UpsertListing applies an optimistic listing create or update. The
// response always carries the state now visible in the directory; a
// failed remote sync only adds a warning.
func (h *Handler) UpsertListing(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordDirectoryOperation("upsert_listing")

	var req ListingRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid listing payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		log.Warn("Listing validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	owner := sessionOwner(c.Get("user_id"), c.Get("email"))
	listing, notice := h.recon.UpsertListing(c.Request().Context(), owner, req.toSupplier(), req.EditTargetID)
	if notice != nil {
		prometheus.OptimisticFallbackCounter.Inc()
	}

	// Return to the dashboard, same as closing the add-item modal.
	userID, _ := c.Get("user_id").(string)
	state := h.nav.Apply(userID, func(s navigation.State) navigation.State {
		s.View = navigation.ViewSupplierDashboard
		return s
	})
	prometheus.RecordViewTransition("upsert_listing", string(state.View))

	resp := echo.Map{"listing": listing, "view": state.View}
	if notice != nil {
		resp["warning"] = notice.Error()
	}
	log.Info("Listing upserted",
		zap.String("id", listing.ID),
		zap.Bool("synced", notice == nil),
		zap.String("edit_target", req.EditTargetID))
	return c.JSON(http.StatusOK, resp)
}

// DossierRequest is the company dossier update payload.
type DossierRequest struct {
	Name               string         `json:"name" validate:"required"`
	Industry           model.Industry `json:"industry"`
	Category           string         `json:"category"`
	Location           string         `json:"location"`
	Description        string         `json:"description"`
	ImageURL           string         `json:"image_url"`
	EstablishedYear    int            `json:"established_year"`
	EmployeeCount      string         `json:"employee_count"`
	FactorySize        string         `json:"factory_size"`
	ProductionCapacity string         `json:"production_capacity"`
	BusinessType       string         `json:"business_type"`
	ExportMarkets      []string       `json:"export_markets"`
	Certifications     []string       `json:"certifications"`
}

// UpdateDossier applies the optimistic-write contract to the session's
// company dossier.
func (h *Handler) UpdateDossier(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordDirectoryOperation("upsert_dossier")

	var req DossierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid dossier payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	owner := sessionOwner(c.Get("user_id"), c.Get("email"))
	dossier, notice := h.recon.UpsertDossier(c.Request().Context(), owner, directoryDossierUpdate(&req))
	if dossier.ID == "" {
		log.Warn("Dossier update without a dossier", zap.String("email", owner.Email))
		return c.JSON(http.StatusOK, echo.Map{"updated": false})
	}
	if notice != nil {
		prometheus.OptimisticFallbackCounter.Inc()
	}

	resp := echo.Map{"dossier": dossier, "updated": true}
	if notice != nil {
		resp["warning"] = notice.Error()
	}
	log.Info("Dossier updated", zap.String("id", dossier.ID), zap.Bool("synced", notice == nil))
	return c.JSON(http.StatusOK, resp)
}

// OnboardingRequest is the supplier registration payload.
type OnboardingRequest struct {
	Name     string         `json:"name" validate:"required"`
	Location string         `json:"location" validate:"required"`
	Industry model.Industry `json:"industry" validate:"required"`
	Category string         `json:"category" validate:"required"`
	Capacity string         `json:"capacity"`
	ImageURL string         `json:"image_url"`
}

// CompleteOnboarding generates the dossier profile through the AI
// collaborator, registers the owner record, and lands the supplier on
// the dashboard.
func (h *Handler) CompleteOnboarding(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordDirectoryOperation("onboarding")

	var req OnboardingRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid onboarding payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	prometheus.RecordAIRequest("generate_profile")
	fields := h.ai.GenerateProfile(c.Request().Context(), ai.BasicProfile{
		Name:     req.Name,
		Location: req.Location,
		Industry: string(req.Industry),
		Category: req.Category,
		Capacity: req.Capacity,
	})

	owner := sessionOwner(c.Get("user_id"), c.Get("email"))
	draft := model.Supplier{
		Name:               req.Name,
		Location:           req.Location,
		Industry:           req.Industry,
		Category:           req.Category,
		ImageURL:           req.ImageURL,
		ContactEmail:       owner.Email,
		Description:        fields.Description,
		Certifications:     fields.Certifications,
		EstablishedYear:    fields.EstablishedYear,
		EmployeeCount:      fields.EmployeeCount,
		FactorySize:        fields.FactorySize,
		BusinessType:       fields.BusinessType,
		ProductionCapacity: req.Capacity,
	}

	dossier, notice := h.recon.RegisterDossier(c.Request().Context(), owner, draft)
	if notice != nil {
		prometheus.OptimisticFallbackCounter.Inc()
	}

	userID, _ := c.Get("user_id").(string)
	state := h.nav.Apply(userID, func(s navigation.State) navigation.State {
		return s.CompleteOnboarding(dossier.Name)
	})
	prometheus.RecordViewTransition("onboarding_complete", string(state.View))

	log.Info("Supplier onboarded",
		zap.String("dossier_id", dossier.ID),
		zap.String("name", dossier.Name),
		zap.Bool("synced", notice == nil))
	return c.JSON(http.StatusCreated, echo.Map{"dossier": dossier, "view": state.View})
}

// Dashboard returns the session's own listings.
func (h *Handler) Dashboard(c echo.Context) error {
	prometheus.RecordDirectoryOperation("dashboard")

	owner := sessionOwner(c.Get("user_id"), c.Get("email"))
	dossier, hasDossier := h.recon.DeriveOwnProfile(owner)
	listings := h.recon.DeriveOwnListings(owner)

	resp := echo.Map{"listings": listings, "has_dossier": hasDossier}
	if hasDossier {
		resp["dossier"] = dossier
	}
	return c.JSON(http.StatusOK, resp)
}

// OwnDossierView returns the display-only composite catalog: the
// dossier with every listing re-expressed as a product.
func (h *Handler) OwnDossierView(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordDirectoryOperation("own_profile")

	owner := sessionOwner(c.Get("user_id"), c.Get("email"))
	dossier, found := h.recon.DeriveOwnProfile(owner)
	if !found {
		log.Warn("Own profile requested without a dossier", zap.String("email", owner.Email))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no dossier for this session"})
	}

	composite := directory.ProjectOwnerDossierView(dossier, h.recon.DeriveOwnListings(owner))
	return c.JSON(http.StatusOK, composite)
}

func directoryDossierUpdate(req *DossierRequest) directory.DossierUpdate {
	return directory.DossierUpdate{
		Name:               req.Name,
		Industry:           req.Industry,
		Category:           req.Category,
		Location:           req.Location,
		Description:        req.Description,
		ImageURL:           req.ImageURL,
		EstablishedYear:    req.EstablishedYear,
		EmployeeCount:      req.EmployeeCount,
		FactorySize:        req.FactorySize,
		ProductionCapacity: req.ProductionCapacity,
		BusinessType:       req.BusinessType,
		ExportMarkets:      req.ExportMarkets,
		Certifications:     req.Certifications,
	}
}
