package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Username  string
	Balance   decimal.Decimal

	// Empty until a card is linked. A user may link at most one card.
	CardNumber string

	// IDs of befriended users in the order friendships were added
	Friends []uuid.UUID
}

func (u User) HasCard() bool {
	return u.CardNumber != ""
}
