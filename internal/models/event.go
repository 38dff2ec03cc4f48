package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypePayment    = "payment"
	EventTypeFriendship = "friendship"
)

// FeedEvent is a single entry of a user's activity feed.
// Usernames are snapshotted in the event: they are immutable after
// construction, so the feed can be rendered without registry lookups.
type FeedEvent struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Type      string

	// Actor paid Target for payment events.
	// For friendship events the two are the befriended pair.
	Actor  string
	Target string

	// Set for payment events only
	PaymentID uuid.UUID
	Amount    decimal.Decimal
	Note      string
}
