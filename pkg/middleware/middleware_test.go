package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/store-insights-api/pkg/log"
)

func TestCors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name        string
		allowed     []string
		origin      string
		method      string
		wantStatus  int
		wantAllowed string
	}{
		{
			name:        "Origem liberada recebe cabeçalhos",
			allowed:     []string{"http://localhost:3000"},
			origin:      "http://localhost:3000",
			method:      http.MethodGet,
			wantStatus:  http.StatusTeapot,
			wantAllowed: "http://localhost:3000",
		},
		{
			name:       "Origem desconhecida segue sem cabeçalhos",
			allowed:    []string{"http://localhost:3000"},
			origin:     "http://evil.example",
			method:     http.MethodGet,
			wantStatus: http.StatusTeapot,
		},
		{
			name:        "Curinga libera qualquer origem",
			allowed:     []string{"*"},
			origin:      "http://qualquer.example",
			method:      http.MethodGet,
			wantStatus:  http.StatusTeapot,
			wantAllowed: "http://qualquer.example",
		},
		{
			name:        "Preflight responde 200 sem chamar o próximo handler",
			allowed:     []string{"http://localhost:3000"},
			origin:      "http://localhost:3000",
			method:      http.MethodOptions,
			wantStatus:  http.StatusOK,
			wantAllowed: "http://localhost:3000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/campaigns", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			Cors(tt.allowed)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestLoggingMiddleware_PropagaRequestID(t *testing.T) {
	log.SetupTestLogger()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()

	LoggingMiddleware()(next).ServeHTTP(rec, req)

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestLoggingMiddleware_GeraRequestID(t *testing.T) {
	log.SetupTestLogger()

	rec := httptest.NewRecorder()
	LoggingMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	rec := httptest.NewRecorder()
	LogPanicMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/segments", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_001")
}
