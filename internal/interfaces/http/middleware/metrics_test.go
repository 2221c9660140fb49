package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	mw, err := HTTPMetrics(provider.Meter("http.server"))
	require.NoError(t, err)

	router := gin.New()
	router.Use(mw)
	router.GET("/api/v1/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products/p-"+string(rune('a'+i)), nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	routes := map[string]int64{}
	classes := map[string]uint64{}
	var durationCount uint64
	for _, m := range rm.ScopeMetrics[0].Metrics {
		switch m.Name {
		case "http_server_request_total":
			sum := m.Data.(metricdata.Sum[int64])
			for _, dp := range sum.DataPoints {
				route, _ := dp.Attributes.Value("http.route")
				routes[route.AsString()] += dp.Value
			}
		case "http_server_request_duration_seconds":
			hist := m.Data.(metricdata.Histogram[float64])
			for _, dp := range hist.DataPoints {
				durationCount += dp.Count
				class, _ := dp.Attributes.Value("http.status_class")
				classes[class.AsString()] += dp.Count
			}
		}
	}

	assert.Equal(t, int64(3), routes["/api/v1/products/:id"])
	assert.Equal(t, int64(1), routes["unknown"])
	assert.Equal(t, uint64(4), durationCount)
	assert.Equal(t, uint64(3), classes["2xx"])
	assert.Equal(t, uint64(1), classes["4xx"])
}
