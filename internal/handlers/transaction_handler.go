package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"transaction-ledger/internal/logging"
	"transaction-ledger/internal/services"
)

type TransactionHandler struct {
	service       services.TransactionService
	logger        *logrus.Logger
	responseDelay time.Duration
}

// NewTransactionHandler builds the transaction endpoints. responseDelay holds back the
// response of every mutating request after the change has been applied.
func NewTransactionHandler(s services.TransactionService, logger *logrus.Logger, responseDelay time.Duration) *TransactionHandler {
	return &TransactionHandler{
		service:       s,
		logger:        logger,
		responseDelay: responseDelay,
	}
}

func (h *TransactionHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/transactions", logging.LoggingWrapper("ListTransactions", h.logger, h.handleList)).Methods(http.MethodGet)
	r.HandleFunc("/transactions", logging.LoggingWrapper("CreateTransaction", h.logger, h.handleCreate)).Methods(http.MethodPost)
	r.HandleFunc("/transactions/{id}", logging.LoggingWrapper("UpdateTransaction", h.logger, h.handleUpdate)).Methods(http.MethodPatch)
	r.HandleFunc("/transactions/{id}", logging.LoggingWrapper("DeleteTransaction", h.logger, h.handleDelete)).Methods(http.MethodDelete)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	msgInternalError = "internal server error"
	msgInvalidBody   = "Invalid JSON body"
)

var errInvalidBody = errors.New("request body is not a JSON object")

func (h *TransactionHandler) sendJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.WithError(err).Error("Handler.sendJSONResponse.encode")
	}
}

func (h *TransactionHandler) sendErrorResponse(w http.ResponseWriter, status int, message string) {
	h.sendJSONResponse(w, status, ErrorResponse{Error: message})
}

// sendServiceError maps service failures onto status codes. Only unexpected faults are
// returned so the logging wrapper reports them as errors.
func (h *TransactionHandler) sendServiceError(w http.ResponseWriter, logData *logging.LogData, err error) error {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		logData.AddData("validationError", validationErr.Reason)
		h.sendErrorResponse(w, http.StatusBadRequest, validationErr.Reason)
		return nil
	case errors.As(err, &notFoundErr):
		logData.AddData("notFound", notFoundErr.ID)
		h.sendErrorResponse(w, http.StatusNotFound, notFoundErr.Error())
		return nil
	default:
		h.sendErrorResponse(w, http.StatusInternalServerError, msgInternalError)
		return err
	}
}

// decodePayload reads a JSON object body, keeping numbers as json.Number.
func decodePayload(r *http.Request) (services.Payload, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var payload services.Payload
	if err := decoder.Decode(&payload); err != nil {
		return nil, errInvalidBody
	}
	if payload == nil {
		return nil, errInvalidBody
	}
	// trailing data after the object
	if decoder.More() {
		return nil, errInvalidBody
	}
	return payload, nil
}

// waitResponseDelay holds the response back. It returns false when the client has gone away.
func (h *TransactionHandler) waitResponseDelay(ctx context.Context, logData *logging.LogData) bool {
	if h.responseDelay <= 0 {
		return true
	}

	stopTimer := logData.AddTiming("responseDelay")
	defer stopTimer()

	timer := time.NewTimer(h.responseDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		logData.AddData("clientGone", true)
		return false
	}
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request, logData *logging.LogData) error {
	transactions := h.service.ListTransactions()
	logData.AddData("transactionCount", len(transactions))

	h.sendJSONResponse(w, http.StatusOK, transactions)
	return nil
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request, logData *logging.LogData) error {
	payload, err := decodePayload(r)
	if err != nil {
		logData.AddData("validationError", err.Error())
		h.sendErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return nil
	}

	tx, err := h.service.CreateTransaction(payload)
	if err != nil {
		return h.sendServiceError(w, logData, err)
	}
	logData.AddData("transactionId", tx.Key())

	if !h.waitResponseDelay(r.Context(), logData) {
		return nil
	}
	h.sendJSONResponse(w, http.StatusCreated, tx)
	return nil
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request, logData *logging.LogData) error {
	id := mux.Vars(r)["id"]
	logData.AddData("transactionId", id)

	patch, err := decodePayload(r)
	if err != nil {
		logData.AddData("validationError", err.Error())
		h.sendErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return nil
	}

	tx, err := h.service.UpdateTransaction(id, patch)
	if err != nil {
		return h.sendServiceError(w, logData, err)
	}

	if !h.waitResponseDelay(r.Context(), logData) {
		return nil
	}
	h.sendJSONResponse(w, http.StatusOK, tx)
	return nil
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request, logData *logging.LogData) error {
	id := mux.Vars(r)["id"]
	logData.AddData("transactionId", id)

	if err := h.service.DeleteTransaction(id); err != nil {
		return h.sendServiceError(w, logData, err)
	}

	if !h.waitResponseDelay(r.Context(), logData) {
		return nil
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
