package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brcargo_cotacoes/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTransition(t *testing.T) {
	m := New()
	m.ObserveTransition(entities.EventOperatorAccept, "ok")
	m.ObserveTransition(entities.EventOperatorAccept, "ok")
	m.ObserveTransition(entities.EventOperatorAccept, "conflict")

	if got := testutil.ToFloat64(m.transitions.WithLabelValues(string(entities.EventOperatorAccept), "ok")); got != 2 {
		t.Fatalf("expected 2 ok transitions, got %v", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues(string(entities.EventOperatorAccept), "conflict")); got != 1 {
		t.Fatalf("expected 1 conflict, got %v", got)
	}
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/v1/quotes/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/quotes/"+id, nil))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/v1/quotes/:id", "204")); got != 2 {
		t.Fatalf("expected 2 requests on the template, got %v", got)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "cotacoes_http_requests_total") {
		t.Fatalf("expected the request counter in the exposition")
	}
}
