package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/messages/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/messages/:id", "204"))
	for _, id := range []string{"msg_a", "msg_b"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/messages/"+id, nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/messages/:id", "204"))
	assert.Equal(t, before+2, after)
}

func TestCoreCounters(t *testing.T) {
	before := testutil.ToFloat64(failOpen.WithLabelValues("list_channels"))
	ObserveFailOpen("list_channels")
	assert.Equal(t, before+1, testutil.ToFloat64(failOpen.WithLabelValues("list_channels")))

	beforeErr := testutil.ToFloat64(invalidations.WithLabelValues("error"))
	ObserveInvalidation(false)
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(invalidations.WithLabelValues("error")))
}
