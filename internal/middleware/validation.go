package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "cleanapi/internal/errors"
)

var (
	errMissingContentType     = apierrors.New(http.StatusBadRequest, "MISSING_CONTENT_TYPE", "Content-Type header is required")
	errUnsupportedContentType = apierrors.New(http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Unsupported content type")
)

// ContentTypeValidator rejects requests with a body whose Content-Type is not
// one of contentTypes.
func ContentTypeValidator(contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			reqID := middleware.GetReqID(r.Context())

			contentType := r.Header.Get("Content-Type")
			if contentType == "" {
				render.Render(w, r, apierrors.NewErrorResponse(errMissingContentType, reqID))
				return
			}

			for _, allowed := range contentTypes {
				if strings.HasPrefix(contentType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			render.Render(w, r, apierrors.NewErrorResponse(errUnsupportedContentType, reqID))
		})
	}
}
