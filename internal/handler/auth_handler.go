package handler

import (
	"net/http"
	"strings"
	"time"

	"quicksupply/internal/directory"
	"quicksupply/internal/model"
	"quicksupply/internal/navigation"
	"quicksupply/pkg/database"
	"quicksupply/pkg/jwtutil"
	"quicksupply/pkg/logger"
	"quicksupply/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignUpRequest is the account registration payload.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=buyer supplier"`
	Phone    string `json:"phone"`
}

// SignUp registers a new buyer or supplier account.
func (h *Handler) SignUp(c echo.Context) error {
	log := logger.FromEcho(c)

	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse sign-up request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		log.Warn("Sign-up validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	profile := model.Profile{
		Email:    strings.ToLower(req.Email),
		Username: req.Username,
		Role:     model.Role(req.Role),
		Password: string(hash),
		Phone:    req.Phone,
	}

	db := database.GetDB()
	if db == nil {
		log.Warn("Sign-up rejected, database unavailable", zap.String("email", profile.Email))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "registration unavailable while offline"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	var existing model.Profile
	if err := db.Where("email = ?", profile.Email).First(&existing).Error; err == nil {
		log.Warn("Sign-up for existing account", zap.String("email", profile.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "account already exists"})
	}
	if result := db.Create(&profile); result.Error != nil {
		log.Error("Failed to create profile", zap.String("email", profile.Email), zap.Error(result.Error))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "registration failed, try again later"})
	}

	log.Info("Profile created",
		zap.String("profile_id", profile.ID),
		zap.String("email", profile.Email),
		zap.String("role", string(profile.Role)))
	return c.JSON(http.StatusCreated, profile)
}

// SignInRequest is the login payload.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignIn authenticates an account, issues a session token, and applies
// the matching login transition to the session's navigation state.
func (h *Handler) SignIn(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse sign-in request", zap.Error(err))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	db := database.GetDB()
	if db == nil {
		log.Warn("Sign-in rejected, database unavailable", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "sign-in unavailable while offline"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var profile model.Profile
	result := db.Where("email = ?", strings.ToLower(req.Email)).First(&profile)
	if result.Error != nil {
		log.Warn("Unknown account", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(profile.ID, profile.Email, profile.Username, string(profile.Role))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	prometheus.AuthSuccessCounter.Inc()

	navProfile := navigation.Profile{UserID: profile.ID, Username: profile.Username, Email: profile.Email}
	var state navigation.State
	if profile.Role == model.RoleSupplier {
		_, hasDossier := h.recon.DeriveOwnProfile(directory.Owner{UserID: profile.ID, Email: profile.Email})
		state = h.nav.Apply(profile.ID, func(s navigation.State) navigation.State {
			return s.SupplierLogin(navProfile, hasDossier)
		})
	} else {
		state = h.nav.Apply(profile.ID, func(s navigation.State) navigation.State {
			return s.BuyerLogin(navProfile)
		})
	}
	prometheus.RecordViewTransition("login", string(state.View))

	log.Info("Session opened",
		zap.String("profile_id", profile.ID),
		zap.String("role", string(profile.Role)),
		zap.String("view", string(state.View)))
	return c.JSON(http.StatusOK, echo.Map{
		"token":   token,
		"profile": profile,
		"view":    state.View,
	})
}

// SignOut clears the session's navigation state. Tokens are stateless;
// the client simply discards its copy.
func (h *Handler) SignOut(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, _ := c.Get("user_id").(string)
	state := h.nav.Apply(userID, func(s navigation.State) navigation.State {
		return s.Logout()
	})
	h.nav.Drop(userID)
	prometheus.RecordViewTransition("logout", string(state.View))

	log.Info("Session closed", zap.String("profile_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"view": state.View})
}

// Session is the bootstrap endpoint. It resolves the session from the
// (optional) token and reports the initial view per the bootstrap
// guards; an absent or invalid session is the landing default, never an
// error.
func (h *Handler) Session(c echo.Context) error {
	log := logger.FromEcho(c)

	tokenString := c.Request().Header.Get("Authorization")
	if len(tokenString) > 7 && strings.ToUpper(tokenString[0:7]) == "BEARER " {
		tokenString = tokenString[7:]
	}
	if tokenString == "" {
		return c.JSON(http.StatusOK, echo.Map{
			"authenticated": false,
			"view":          navigation.ViewLanding,
			"offline":       h.recon.Offline(),
		})
	}

	claims, err := jwtutil.ValidateToken(tokenString)
	if err != nil {
		log.Warn("Bootstrap with invalid token, defaulting to landing", zap.Error(err))
		return c.JSON(http.StatusOK, echo.Map{
			"authenticated": false,
			"view":          navigation.ViewLanding,
			"offline":       h.recon.Offline(),
		})
	}

	navProfile := navigation.Profile{UserID: claims.UserID, Username: claims.Username, Email: claims.Email}
	_, hasDossier := h.recon.DeriveOwnProfile(directory.Owner{UserID: claims.UserID, Email: claims.Email})
	state := h.nav.Apply(claims.UserID, func(s navigation.State) navigation.State {
		return s.Bootstrap(model.Role(claims.Role), navProfile, hasDossier)
	})
	prometheus.RecordViewTransition("bootstrap", string(state.View))

	log.Info("Session bootstrapped",
		zap.String("profile_id", claims.UserID),
		zap.String("role", claims.Role),
		zap.String("view", string(state.View)))
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": true,
		"role":          claims.Role,
		"username":      claims.Username,
		"email":         claims.Email,
		"view":          state.View,
		"offline":       h.recon.Offline(),
	})
}
