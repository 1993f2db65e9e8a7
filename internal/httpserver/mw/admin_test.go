package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/enjoypark/companion/internal/logger"
)

func TestRequireAdminToken(t *testing.T) {
	log := logger.New("error", false)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{
			name:       "valid token",
			configured: "s3cret",
			header:     "Bearer s3cret",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong token",
			configured: "s3cret",
			header:     "Bearer nope",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing header",
			configured: "s3cret",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no token configured hides admin",
			configured: "",
			header:     "Bearer anything",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireAdminToken(tt.configured, log)(next)
			req := httptest.NewRequest(http.MethodGet, "/admin/infra", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
