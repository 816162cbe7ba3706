package handlers

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every endpoint behind panic recovery and CORS.
func NewRouter(transactions *TransactionHandler, status *StatusHandler, logger *logrus.Logger, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(recoverMiddleware(logger))

	transactions.RegisterRoutes(r)
	status.RegisterRoutes(r)
	RegisterDocsRoutes(r)

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(allowedOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return cors(r)
}

// recoverMiddleware turns a handler panic into a 500 with the standard error body.
func recoverMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithFields(logrus.Fields{
						"panic":  rec,
						"path":   r.URL.Path,
						"method": r.Method,
						"stack":  string(debug.Stack()),
					}).Error("Handler.panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msgInternalError})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
