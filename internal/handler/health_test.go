package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubHealthChecker struct {
	err error
}

func (s stubHealthChecker) Health(ctx context.Context) error {
	return s.err
}

func TestHealthReportsServiceAndStatus(t *testing.T) {
	h := HealthHandler{DB: stubHealthChecker{}}

	rec := httptest.NewRecorder()
	h.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["service"] != "gropower-backend" {
		t.Fatalf("service = %q, want gropower-backend", body["service"])
	}
	if body["status"] != "ok" {
		t.Fatalf("status = %q, want ok", body["status"])
	}
}

func TestHealthDegradedWhenDatabaseUnreachable(t *testing.T) {
	h := HealthHandler{DB: stubHealthChecker{err: errors.New("connection refused")}}

	rec := httptest.NewRecorder()
	h.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "degraded" {
		t.Fatalf("status = %q, want degraded", body["status"])
	}
}
