package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/devNatanFrei/e-commerce/internal/pkg/message"
	"github.com/devNatanFrei/e-commerce/internal/pkg/web"
)

const mimeMultipart = "multipart/form-data"

// CheckContentType rejects request bodies that are neither JSON nor multipart
// uploads. Methods without a body pass through untouched.
func CheckContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodDelete:
			next.ServeHTTP(w, r)
			return
		}

		contentType := r.Header.Get(web.HeaderContentType)
		if strings.HasPrefix(contentType, web.MimeJSON) || strings.HasPrefix(contentType, mimeMultipart) {
			next.ServeHTTP(w, r)
			return
		}

		web.Fail(w, http.StatusNotAcceptable, fmt.Errorf("invalid content-type: %s", contentType), message.InvalidInput, nil)
	})
}
