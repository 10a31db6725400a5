package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// JSONRequest builds a request with a JSON-encoded body.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// BearerRequest builds a request carrying a bearer credential.
func BearerRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()
	req := JSONRequest(t, method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// DecodeBody unmarshals a recorded JSON response body.
func DecodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
	return out
}

// AssertOK fails unless the response carries ok=true.
func AssertOK(t *testing.T, body map[string]any) {
	t.Helper()
	if ok, _ := body["ok"].(bool); !ok {
		t.Fatalf("response not ok: %v", body)
	}
}

// AssertFail fails unless the response carries ok=false with the message.
func AssertFail(t *testing.T, body map[string]any, message string) {
	t.Helper()
	if ok, _ := body["ok"].(bool); ok {
		t.Fatalf("expected failure response, got: %v", body)
	}
	if got, _ := body["message"].(string); got != message {
		t.Fatalf("message = %q, want %q", got, message)
	}
}
