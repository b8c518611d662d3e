package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	TaxID     string    `json:"tax_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCustomer(name, email, taxID string) *Customer {
	return &Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		TaxID:     taxID,
		CreatedAt: time.Now().UTC(),
	}
}
