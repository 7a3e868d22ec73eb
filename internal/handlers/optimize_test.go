package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanmorph/dispatch-service/internal/optimizer"
)

func f64(v float64) *float64 { return &v }

func previewRouter() *gin.Engine {
	InitOptimizer(optimizer.DefaultConfig(), optimizer.NewMetricsRecorder())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/internal/dispatch/suggestions/preview", PreviewSuggestions)
	return router
}

// TestPreviewSuggestionsHappyPath runs an inline snapshot through the
// optimizer and checks the response envelope.
func TestPreviewSuggestionsHappyPath(t *testing.T) {
	router := previewRouter()

	reqBody := PreviewRequest{
		Pickups: []PickupDTO{
			{ID: "pk-1", PickupNumber: "GB-001", OrgName: "Apex Apartments", WeightKg: f64(200), Lat: f64(12.900), Lng: f64(77.500)},
			{ID: "pk-2", PickupNumber: "GB-002", OrgName: "Lakeview Tech Park", WeightKg: f64(150), Lat: f64(12.918), Lng: f64(77.518)},
			{ID: "pk-3", PickupNumber: "GB-003", OrgName: "No GPS Mart", WeightKg: f64(80)},
		},
		Farmers: []FarmerDTO{
			{ID: "fm-1", Lat: f64(12.950), Lng: f64(77.550)},
		},
		Rates: []RateDTO{
			{VehicleType: "auto", BaseFareRs: 100, PerKmRs: 15},
		},
		Vehicles: []VehicleDTO{
			{ID: "veh-1", VehicleType: "auto", CapacityKg: 400, CapacityM3: f64(2.5)},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/internal/dispatch/suggestions/preview", bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response OptimizeResponse
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	require.Len(t, response.Suggestions, 1)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, 0, response.UnplacedCount)
	assert.Equal(t, []string{"pk-1", "pk-2"}, response.Suggestions[0].PickupIDs)
	assert.Equal(t, "auto", response.Suggestions[0].VehicleType)
	assert.Equal(t, 1, response.Suggestions[0].Trips)

	require.Len(t, response.SkippedPickups, 1)
	assert.Equal(t, "pk-3", response.SkippedPickups[0].ID)
}

// TestPreviewSuggestionsReportsUnplaced verifies the envelope surfaces
// pickups whose cluster matched no farmer.
func TestPreviewSuggestionsReportsUnplaced(t *testing.T) {
	router := previewRouter()

	reqBody := PreviewRequest{
		Pickups: []PickupDTO{
			{ID: "pk-1", WeightKg: f64(200), Lat: f64(12.900), Lng: f64(77.500)},
		},
		Farmers: []FarmerDTO{
			{ID: "fm-1"}, // no coordinates
		},
		Rates: []RateDTO{
			{VehicleType: "auto", BaseFareRs: 100, PerKmRs: 15},
		},
		Vehicles: []VehicleDTO{
			{ID: "veh-1", VehicleType: "auto", CapacityKg: 400},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/internal/dispatch/suggestions/preview", bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response OptimizeResponse
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Empty(t, response.Suggestions)
	assert.Empty(t, response.SkippedPickups)
	assert.Equal(t, 1, response.UnplacedCount)
}

// TestPreviewSuggestionsRejectsBadJSON verifies malformed bodies get a 400.
func TestPreviewSuggestionsRejectsBadJSON(t *testing.T) {
	router := previewRouter()

	req, err := http.NewRequest("POST", "/internal/dispatch/suggestions/preview", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestSuggestJobsWithoutDatabase verifies the snapshot endpoint degrades to
// 503 when no pool is configured.
func TestSuggestJobsWithoutDatabase(t *testing.T) {
	InitOptimizer(optimizer.DefaultConfig(), optimizer.NewMetricsRecorder())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/internal/dispatch/suggestions", SuggestJobs)

	req, err := http.NewRequest("POST", "/internal/dispatch/suggestions", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
