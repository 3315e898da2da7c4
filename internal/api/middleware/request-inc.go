package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lumipack/billing/internal/metrics"
)

func RequestIncMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			metrics.Metrics().RequestInc(ww.Status())
			metrics.Metrics().RequestStatusInc(r.Method, r.RequestURI, ww.Status())
		}()
		next.ServeHTTP(ww, r)
	})
}
