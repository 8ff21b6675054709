package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpsertProductRejectsUnknownStatus(t *testing.T) {
	h := ProductAdminHandler{Currency: "NGN"}

	for _, status := range []string{"archived", "ACTIVE", "deleted"} {
		body := `{"type":"Engine Oil","litre":"4L","price":9000,"status":"` + status + `"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.upsert(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status %q: code = %d, want %d", status, rec.Code, http.StatusBadRequest)
		}
		if !strings.Contains(rec.Body.String(), "active or inactive") {
			t.Fatalf("status %q: body = %s, want status validation message", status, rec.Body.String())
		}
	}
}
