package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devNatanFrei/e-commerce/internal/middleware"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	const bodySize = 1 << 10

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantEmail  string
	}{
		{
			name:       "Valid payload reaches the handler",
			body:       `{"email": "ana@example.com", "password": "hunter2!"}`,
			wantStatus: http.StatusOK,
			wantEmail:  "ana@example.com",
		},
		{
			name:       "Unknown field is unprocessable",
			body:       `{"email": "ana@example.com", "password": "hunter2!", "role": "admin"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "Malformed json is a bad request",
			body:       `{"email": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Trailing data is a bad request",
			body:       `{"email": "ana@example.com"}{"more": true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Oversized payload is rejected",
			body:       `{"email": "` + strings.Repeat("a", bodySize) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotEmail string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				params, err := web.ParamsFromContext[loginPayload](r.Context())
				if err != nil {
					t.Errorf("ParamsFromContext returned an error: %v", err)
				}
				gotEmail = params.Email
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			middleware.DecodePayload[loginPayload](bodySize)(next).ServeHTTP(rec, req)

			if gotStatus := rec.Code; gotStatus != tc.wantStatus {
				t.Errorf("rec.Code = %d, want: %d", gotStatus, tc.wantStatus)
			}

			if tc.wantEmail != "" && gotEmail != tc.wantEmail {
				t.Errorf("decoded email = %q, want: %q", gotEmail, tc.wantEmail)
			}
		})
	}
}
