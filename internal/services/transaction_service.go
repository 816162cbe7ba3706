package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"transaction-ledger/internal/models"
	"transaction-ledger/internal/store"
)

// Payload is a decoded JSON object. Numbers are expected as json.Number (decoder.UseNumber)
// but plain Go numeric types are accepted as well.
type Payload map[string]interface{}

type TransactionService interface {
	ListTransactions() []models.Transaction
	CreateTransaction(candidate Payload) (models.Transaction, error)
	UpdateTransaction(id string, patch Payload) (models.Transaction, error)
	DeleteTransaction(id string) error
	CountTransactions() int
}

type transactionService struct {
	store *store.TransactionStore
}

func NewTransactionService(store *store.TransactionStore) TransactionService {
	return &transactionService{
		store: store,
	}
}

func (s *transactionService) ListTransactions() []models.Transaction {
	return s.store.List()
}

func (s *transactionService) CountTransactions() int {
	return s.store.Len()
}

// CreateTransaction runs the checks in a fixed order and reports the first failure.
func (s *transactionService) CreateTransaction(candidate Payload) (models.Transaction, error) {
	rawID, hasID := candidate["id"]
	rawTypeID, hasTypeID := candidate["typeId"]
	rawAmount, hasAmount := candidate["amount"]
	rawCreatedAt, hasCreatedAt := candidate["createdAt"]

	// amount 0 is treated as missing
	if isFalsy(rawID, hasID) || isFalsy(rawTypeID, hasTypeID) ||
		isFalsy(rawAmount, hasAmount) || isFalsy(rawCreatedAt, hasCreatedAt) {
		return models.Transaction{}, invalid(msgMissingFields)
	}

	idStr, isString := rawID.(string)
	if !isString || !isNumber(rawTypeID) || !isNumber(rawAmount) {
		return models.Transaction{}, invalid(msgInvalidTypes)
	}

	typeID, ok := toInt64(rawTypeID)
	if !ok {
		return models.Transaction{}, invalid(msgTypeIDInteger)
	}
	amount, _ := toFloat64(rawAmount)

	id, ok := parseUUIDv4(idStr)
	if !ok {
		return models.Transaction{}, invalid(msgInvalidUUID)
	}

	createdAt, ok := parseDateTime(rawCreatedAt)
	if !ok {
		return models.Transaction{}, invalid(msgInvalidDate)
	}

	description, err := parseDescription(candidate)
	if err != nil {
		return models.Transaction{}, err
	}

	tx := models.NewTransaction(id, typeID, amount, createdAt, description)
	if err := s.store.Add(tx); err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			return models.Transaction{}, invalid(fmt.Sprintf("Transaction with id %s already exists", tx.Key()))
		}
		return models.Transaction{}, err
	}
	return tx, nil
}

// UpdateTransaction merges the fields present in patch over the stored record.
func (s *transactionService) UpdateTransaction(id string, patch Payload) (models.Transaction, error) {
	changes, err := parsePatch(patch)
	if err != nil {
		return models.Transaction{}, err
	}

	key, ok := lookupKey(id)
	if !ok {
		return models.Transaction{}, &NotFoundError{ID: id}
	}

	tx, err := s.store.Update(key, changes.apply)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Transaction{}, &NotFoundError{ID: id}
		}
		return models.Transaction{}, err
	}
	return tx, nil
}

func (s *transactionService) DeleteTransaction(id string) error {
	key, ok := lookupKey(id)
	if !ok {
		return &NotFoundError{ID: id}
	}

	if err := s.store.Delete(key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{ID: id}
		}
		return err
	}
	return nil
}

// lookupKey turns a path id into the canonical store key. Anything that is not a UUID
// cannot be stored, so it is reported as not found.
func lookupKey(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

type transactionPatch struct {
	typeID    *int64
	amount    *float64
	createdAt *time.Time
	forText   *string
}

func parsePatch(patch Payload) (transactionPatch, error) {
	var changes transactionPatch

	if _, ok := patch["id"]; ok {
		return changes, invalid(msgIDImmutable)
	}

	if raw, ok := patch["typeId"]; ok {
		if !isNumber(raw) {
			return changes, invalid(msgTypeIDNumber)
		}
		typeID, ok := toInt64(raw)
		if !ok {
			return changes, invalid(msgTypeIDInteger)
		}
		changes.typeID = &typeID
	}

	if raw, ok := patch["amount"]; ok {
		amount, ok := toFloat64(raw)
		if !ok {
			return changes, invalid(msgAmountNumber)
		}
		changes.amount = &amount
	}

	if raw, ok := patch["createdAt"]; ok {
		createdAt, ok := parseDateTime(raw)
		if !ok {
			return changes, invalid(msgInvalidDate)
		}
		changes.createdAt = &createdAt
	}

	if _, ok := patch["for"]; ok {
		description, err := parseDescription(patch)
		if err != nil {
			return changes, err
		}
		changes.forText = &description
	}

	return changes, nil
}

func (p transactionPatch) apply(tx *models.Transaction) {
	if p.typeID != nil {
		tx.TypeID = *p.typeID
	}
	if p.amount != nil {
		tx.Amount = *p.amount
	}
	if p.createdAt != nil {
		tx.CreatedAt = *p.createdAt
	}
	if p.forText != nil {
		tx.For = *p.forText
	}
}

// parseDescription reads the optional "for" field; null and absent both mean empty.
func parseDescription(p Payload) (string, error) {
	raw, ok := p["for"]
	if !ok || raw == nil {
		return "", nil
	}

	description, ok := raw.(string)
	if !ok {
		return "", invalid(msgForString)
	}
	return description, nil
}
