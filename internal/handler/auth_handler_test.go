package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"quicksupply/internal/navigation"
	"quicksupply/pkg/config"
	"quicksupply/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "quicksupply_test"}})
	os.Exit(m.Run())
}

func postJSON(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignUpOfflineIsNotAConflict(t *testing.T) {
	// No database connection: registration must report unavailability,
	// not pretend the account already exists.
	h := New(nil, nil, nil, navigation.NewRegistry(), nil)
	c, rec := postJSON(t, "/auth/signup",
		`{"email":"new@buyer.kh","password":"longenough","username":"sokha","role":"buyer"}`)

	require.NoError(t, h.SignUp(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "already exists")
}

func TestSignInOfflineReturnsServiceUnavailable(t *testing.T) {
	h := New(nil, nil, nil, navigation.NewRegistry(), nil)
	c, rec := postJSON(t, "/auth/signin",
		`{"email":"new@buyer.kh","password":"longenough"}`)

	require.NoError(t, h.SignIn(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSignUpValidation(t *testing.T) {
	h := New(nil, nil, nil, navigation.NewRegistry(), nil)

	// Short password.
	c, rec := postJSON(t, "/auth/signup",
		`{"email":"new@buyer.kh","password":"short","username":"sokha","role":"buyer"}`)
	require.NoError(t, h.SignUp(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Role outside the marketplace pair.
	c, rec = postJSON(t, "/auth/signup",
		`{"email":"new@buyer.kh","password":"longenough","username":"sokha","role":"admin"}`)
	require.NoError(t, h.SignUp(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
