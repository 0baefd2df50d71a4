package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tourlogistics/internal/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	h := CORS([]string{"https://app.example", "https://admin.example"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://ADMIN.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://ADMIN.example" {
		t.Fatalf("unexpected allow origin %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials to be allowed")
	}
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	h := CORS([]string{"https://app.example"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS headers, got %q", got)
	}
}

func TestCORSWildcardAndPreflight(t *testing.T) {
	h := CORS([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/day-logistics", nil)
	req.Header.Set("Origin", "https://anything.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected wildcard origin")
	}
}

func TestRequestLoggingPropagatesRequestID(t *testing.T) {
	var seen string
	h := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "req-123" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != "req-123" {
		t.Fatal("expected request id echoed in response")
	}
}

func TestRequestLoggingGeneratesRequestID(t *testing.T) {
	h := RequestLogging()(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if len(rec.Header().Get(RequestIDHeader)) != 36 {
		t.Fatalf("expected generated uuid, got %q", rec.Header().Get(RequestIDHeader))
	}
}

func TestRecoveryReturnsJSONError(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), RequestLogging(), Recovery())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != `{"error":"internal server error"}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
