package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a single ledger entry. ID is supplied by the client on creation
// and never changes afterwards.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	TypeID    int64     `json:"typeId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	For       string    `json:"for"`
}

// Key is the canonical string form used to index the transaction.
func (t Transaction) Key() string {
	return t.ID.String()
}

func NewTransaction(id uuid.UUID, typeID int64, amount float64, createdAt time.Time, description string) Transaction {
	return Transaction{
		ID:        id,
		TypeID:    typeID,
		Amount:    amount,
		CreatedAt: createdAt.UTC(),
		For:       description,
	}
}
