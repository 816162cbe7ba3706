package store

import (
	"errors"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"transaction-ledger/internal/models"
)

var (
	ErrNotFound    = errors.New("transaction not found")
	ErrDuplicateID = errors.New("transaction id already exists")
)

type TransactionStore struct {
	mu           sync.RWMutex       // one lock for the whole collection
	transactions *linkedhashmap.Map // key: canonical id, value: models.Transaction; keeps insertion order
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		transactions: linkedhashmap.New(),
	}
}

// List returns a copy of every transaction in insertion order.
func (s *TransactionStore) List() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := s.transactions.Values()
	result := make([]models.Transaction, 0, len(values))
	for _, v := range values {
		result = append(result, v.(models.Transaction))
	}
	return result
}

func (s *TransactionStore) Get(id string) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, found := s.transactions.Get(id)
	if !found {
		return models.Transaction{}, ErrNotFound
	}
	return v.(models.Transaction), nil
}

func (s *TransactionStore) Add(tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions.Get(tx.Key()); exists {
		return ErrDuplicateID
	}

	s.transactions.Put(tx.Key(), tx)
	return nil
}

// Update applies fn to a copy of the stored transaction and writes the result back
// at the same position. The id is restored after fn runs.
func (s *TransactionStore) Update(id string, fn func(tx *models.Transaction)) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.transactions.Get(id)
	if !found {
		return models.Transaction{}, ErrNotFound
	}

	tx := v.(models.Transaction)
	originalID := tx.ID
	fn(&tx)
	tx.ID = originalID

	// Put on an existing key keeps its place in the ordering
	s.transactions.Put(id, tx)
	return tx, nil
}

func (s *TransactionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.transactions.Get(id); !found {
		return ErrNotFound
	}

	s.transactions.Remove(id)
	return nil
}

func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.Size()
}
