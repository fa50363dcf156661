package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movies-backend/internal/config"
	"movies-backend/pkg/container"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.Build(&config.Config{
		App:     config.AppConfig{Environment: "test", Version: "test"},
		Elastic: config.ElasticConfig{FilmsIndex: "movies", GenresIndex: "genres", PersonsIndex: "persons"},
		Cache: config.CacheConfig{
			Driver: config.DriverMemory, FilmTTL: time.Minute, GenreTTL: time.Minute, PersonTTL: time.Minute,
		},
		Search:  config.SearchConfig{Driver: config.DriverMemory, PersonFilmsLimit: 10},
		Breaker: config.BreakerConfig{FailureThreshold: 5, Timeout: time.Second},
	})
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)
	return c
}

func TestSetupRouter_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(newTestContainer(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Services["search"])
	assert.Equal(t, "ok", body.Services["cache"])
}

func TestSetupRouter_RoutesAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(newTestContainer(t))

	for _, path := range []string{"/api/v1/films", "/api/v1/genres", "/api/v1/persons"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "http_requests_total"))
}
