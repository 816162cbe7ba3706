package handlers

import (
	_ "embed"
	"net/http"

	"github.com/gorilla/mux"
)

//go:embed openapi.json
var openAPIDocument []byte

// RegisterDocsRoutes publishes the OpenAPI description of the transaction endpoints.
func RegisterDocsRoutes(r *mux.Router) {
	r.HandleFunc("/docs/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(openAPIDocument)
	}).Methods(http.MethodGet)
}
