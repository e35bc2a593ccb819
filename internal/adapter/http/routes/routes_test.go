package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brcargo_cotacoes/internal/adapter/http/middleware"
	"brcargo_cotacoes/internal/adapter/persistence/memory"
	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/domain/validation"
	"brcargo_cotacoes/internal/infrastructure/metrics"
	"brcargo_cotacoes/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	consultant = entities.User{ID: "consultor-1", Name: "Carla", Role: entities.RoleConsultor, Active: true}
	operator   = entities.User{ID: "operador-1", Name: "Otávio", Role: entities.RoleOperador, Active: true}
	manager    = entities.User{ID: "gerente-1", Name: "Gina", Role: entities.RoleGerente, Active: true}
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterBindingTags(); err != nil {
		panic(err)
	}
}

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	users := memory.NewUserStore(consultant, operator, manager)
	companies := memory.NewCompanyStore(entities.Company{ID: "brcargo-sp", Name: "BR Cargo SP", Active: true})
	quotes := memory.NewQuoteStore()
	inbox := usecase.NewNotificationUseCase(memory.NewNotificationStore(), users, nil, nil)
	m := metrics.New()

	uc := usecase.NewQuoteUseCase(quotes, users, companies,
		usecase.NewQuoteNumberer(quotes, time.UTC),
		usecase.WithNotifier(inbox),
		usecase.WithTransitionMetrics(m),
	)
	return NewRouter(Dependencies{
		Quotes:        uc,
		Notifications: inbox,
		Users:         users,
		Location:      time.UTC,
		Metrics:       m,
		RateLimiter:   limiter,
		CORSOrigins:   []string{"*"},
	})
}

func call(h http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type quoteBody struct {
	ID      string `json:"id"`
	Number  string `json:"number"`
	Status  string `json:"status"`
	Version int64  `json:"version"`
}

const createBody = `{
	"mode": "rodoviario",
	"client": {"name": "Acme", "tax_id": "11.222.333/0001-81", "number": "CLI-1"},
	"origin": {"postal_code": "01310-100", "address": "Av. Paulista, 1000", "city": "São Paulo", "state": "SP"},
	"destination": {"postal_code": "80010-000", "address": "Rua XV, 10", "city": "Curitiba", "state": "PR"},
	"cargo": {"description": "Peças", "weight_kg": 120, "declared_value": "5000.00", "cubic_volume": "1.2"}
}`

func TestRouter_QuoteLifecycle(t *testing.T) {
	h := newTestRouter(t, nil)

	w := call(h, http.MethodPost, "/v1/quotes", consultant.ID, createBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var q quoteBody
	decode(t, w, &q)
	assert.Regexp(t, `^COT-\d{8}-0001$`, q.Number)
	assert.Equal(t, "solicitada", q.Status)

	steps := []struct {
		userID string
		path   string
		body   string
		status string
	}{
		{operator.ID, "/accept", "", "aceita_operador"},
		{operator.ID, "/send", `{"freight_value": "850.00", "lead_time_days": 3, "provider_company_id": "brcargo-sp"}`, "cotacao_enviada"},
		{consultant.ID, "/approve", `{"note": "cliente aprovou"}`, "aceita_consultor"},
		{operator.ID, "/finalize", "", "finalizada"},
	}
	for _, s := range steps {
		w = call(h, http.MethodPost, "/v1/quotes/"+q.ID+s.path, s.userID, s.body)
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", s.path, w.Body.String())
		decode(t, w, &q)
		assert.Equal(t, s.status, q.Status, s.path)
	}
	assert.Equal(t, int64(5), q.Version)

	w = call(h, http.MethodGet, "/v1/quotes/"+q.ID+"/history", consultant.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var history []map[string]any
	decode(t, w, &history)
	assert.Len(t, history, 5)

	// finalized quotes take no further events
	w = call(h, http.MethodPost, "/v1/quotes/"+q.ID+"/accept", operator.ID, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(h, http.MethodGet, "/v1/notifications?unread_only=true", consultant.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var inbox struct {
		Items  []map[string]any `json:"items"`
		Unread int64            `json:"unread"`
	}
	decode(t, w, &inbox)
	assert.Equal(t, int64(2), inbox.Unread)

	w = call(h, http.MethodPost, "/v1/notifications/read-all", consultant.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"marked": 2}`, w.Body.String())

	w = call(h, http.MethodGet, "/v1/quotes/statistics", manager.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Total int64 `json:"total"`
	}
	decode(t, w, &stats)
	assert.Equal(t, int64(1), stats.Total)
}

func TestRouter_RequiresKnownCaller(t *testing.T) {
	h := newTestRouter(t, nil)

	assert.Equal(t, http.StatusUnauthorized, call(h, http.MethodGet, "/v1/quotes", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(h, http.MethodGet, "/v1/quotes", "ghost", "").Code)
	assert.Equal(t, http.StatusOK, call(h, http.MethodGet, "/v1/ping", "", "").Code)
}

func TestRouter_OperatorCannotCreate(t *testing.T) {
	h := newTestRouter(t, nil)

	w := call(h, http.MethodPost, "/v1/quotes", operator.ID, createBody)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}

func TestRouter_RateLimitAppliesPerCaller(t *testing.T) {
	h := newTestRouter(t, middleware.NewRateLimiter(0.001, 1))

	assert.Equal(t, http.StatusOK, call(h, http.MethodGet, "/v1/quotes", consultant.ID, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, call(h, http.MethodGet, "/v1/quotes", consultant.ID, "").Code)
	assert.Equal(t, http.StatusOK, call(h, http.MethodGet, "/v1/quotes", manager.ID, "").Code)
}

func TestRouter_MetricsAndCORS(t *testing.T) {
	h := newTestRouter(t, nil)
	call(h, http.MethodGet, "/v1/ping", "", "")

	w := call(h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cotacoes_http_requests_total")

	req := httptest.NewRequest(http.MethodOptions, "/v1/quotes", nil)
	req.Header.Set("Origin", "https://painel.brcargo.com.br")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-user-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
