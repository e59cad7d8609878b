package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "inventory/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRouteAndStatus(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/products/:id", func(c echo.Context) error {
		if c.Param("id") == "404" {
			return domainerrors.ErrProductNotFound
		}

		return c.String(http.StatusOK, "ok")
	})

	for _, path := range []string{"/products/1", "/products/2", "/products/404"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/products/:id", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/products/:id", "404")), 0)
}

func TestObserve_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveProduct("create", nil)
		m.ObserveAuth("login", nil)
		m.ObserveImage("store", "ok")
		require.NoError(t, m.RegisterDB(nil, "primary"))
	})
}

func TestObserveProduct_LabelsByErrorCode(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveProduct("update", nil)
	m.ObserveProduct("update", domainerrors.ErrValidationFailed.WithDetails("price"))
	m.ObserveProduct("update", io.ErrUnexpectedEOF)

	assert.InDelta(t, 1, testutil.ToFloat64(m.ProductOperationsTotal.WithLabelValues("update", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ProductOperationsTotal.WithLabelValues("update", "VALIDATION_FAILED")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ProductOperationsTotal.WithLabelValues("update", "error")), 0)
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())
	m.ObserveImage("remove", "not_found")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `inventory_image_operations_total{operation="remove",status="not_found"} 1`)
}
