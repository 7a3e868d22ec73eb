package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Listing endpoints must degrade to 503 without a pool, same as the
// suggestion endpoint, instead of panicking into gin's recovery.
func TestListingEndpointsWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/internal/pickups", ListPickups)
	router.GET("/internal/farmers", ListFarmers)
	router.GET("/internal/fleet/vehicles", ListVehicles)
	router.GET("/internal/fleet/rates", ListRates)

	paths := []string{
		"/internal/pickups",
		"/internal/farmers",
		"/internal/fleet/vehicles",
		"/internal/fleet/rates",
	}

	for _, path := range paths {
		req, err := http.NewRequest("GET", path, nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}
