package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devNatanFrei/e-commerce/internal/middleware"
)

func TestCheckContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"JSON body accepted", http.MethodPost, "application/json", http.StatusOK},
		{"JSON with charset accepted", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"Multipart upload accepted", http.MethodPost, "multipart/form-data; boundary=x", http.StatusOK},
		{"GET without content type accepted", http.MethodGet, "", http.StatusOK},
		{"DELETE without content type accepted", http.MethodDelete, "", http.StatusOK},
		{"Unsupported content type rejected", http.MethodPost, "text/xml", http.StatusNotAcceptable},
		{"Missing content type on POST rejected", http.MethodPost, "", http.StatusNotAcceptable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tc.method, "/", strings.NewReader("{}"))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			rec := httptest.NewRecorder()

			middleware.CheckContentType(next).ServeHTTP(rec, req)

			if gotStatus := rec.Code; gotStatus != tc.wantStatus {
				t.Errorf("rec.Code = %d, want: %d", gotStatus, tc.wantStatus)
			}
		})
	}
}
