package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodBalance = "balance"
	PaymentMethodCard    = "card"
)

// Payment is an immutable record of a settled transfer.
// Actor and target are references into the user registry, payments own neither.
// Two payments with equal amounts stay distinguishable by ID.
type Payment struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Amount    decimal.Decimal
	ActorID   uuid.UUID
	TargetID  uuid.UUID
	Note      string
	Method    string
}
