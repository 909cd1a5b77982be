package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/WanderWise/wander-wise-backend/errors"
	"github.com/WanderWise/wander-wise-backend/logger"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

func performWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestErrorHandler_AppError(t *testing.T) {
	w := performWithError(t, apperrors.NoDestinationFound())

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NO_DESTINATION_FOUND", body["type"])
	assert.Equal(t, "502", body["code"])
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, body["message"], body["error"])
}

// Clients read the `error` key on every failure shape, matching the
// handler-level 400 responses.
func TestErrorHandler_ErrorKeyAlwaysPresent(t *testing.T) {
	for name, err := range map[string]error{
		"app error":     apperrors.ProviderFailure(errors.New("boom"), "flight-booking"),
		"unknown error": errors.New("boom"),
	} {
		t.Run(name, func(t *testing.T) {
			w := performWithError(t, err)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			errVal, ok := body["error"].(string)
			require.True(t, ok)
			assert.NotEmpty(t, errVal)
		})
	}
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	w := performWithError(t, apperrors.ValidationFailed("Invalid trip input", "budget must be positive"))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["type"])
	assert.Equal(t, "budget must be positive", body["details"])
}

func TestErrorHandler_UnknownError(t *testing.T) {
	w := performWithError(t, errors.New("kaboom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SERVER_ERROR", body["type"])
	assert.Equal(t, "An unexpected error occurred", body["message"])
}

func TestErrorHandler_NoError(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// A caller-provided ID is preserved.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	router.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}
