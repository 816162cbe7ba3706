package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"transaction-ledger/internal/logging"
	"transaction-ledger/internal/services"
)

type StatusHandler struct {
	service services.TransactionService
	logger  *logrus.Logger
}

func NewStatusHandler(s services.TransactionService, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{service: s, logger: logger}
}

type StatusResponse struct {
	Status       string `json:"status"`
	Transactions int    `json:"transactions"`
}

func (h *StatusHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/status", logging.LoggingWrapper("Status", h.logger, h.handleStatus)).Methods(http.MethodGet)
}

func (h *StatusHandler) handleStatus(w http.ResponseWriter, r *http.Request, logData *logging.LogData) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(StatusResponse{
		Status:       "ok",
		Transactions: h.service.CountTransactions(),
	})
}
