package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/julianpalmerio/minivenmo/internal/models"
)

// Storage aggregates the repositories over the user registry
type Storage interface {
	Users() UserRepo
	Feed() FeedRepo

	// InTx runs fn atomically against storage. While fn runs no other
	// operation may observe or change the registry, so check-then-act
	// sequences (balance check before deduct, card check before link)
	// are safe under concurrent callers.
	//
	// There is no rollback: fn must do all its checks before mutating.
	InTx(ctx context.Context, fn func(s Storage) error) error
}

// User registry interface
type UserRepo interface {
	// Create user with zero balance and no card
	// If user with username exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, username string) (models.User, error)

	// Get user by username or id
	// If user not found must return apperrors.ErrUserNotFound
	GetUser(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)

	// Apply delta to the user balance and return the updated user
	// Must return apperrors.ErrBalanceInsufficient if the balance would go negative
	UpdateBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (models.User, error)

	// Link the card to the user
	// Must return apperrors.ErrCardAlreadyLinked on a second link whatever the number
	LinkCard(ctx context.Context, userID uuid.UUID, number string) (models.User, error)

	// Record the symmetric friendship edge between two users
	// Reports whether the edge is new; adding an existing edge is a no-op
	AddFriend(ctx context.Context, userID uuid.UUID, friendID uuid.UUID) (added bool, err error)
}

// Per-user activity feed interface
type FeedRepo interface {
	// Append event to the user's feed. Feeds are append only.
	AppendEvent(ctx context.Context, userID uuid.UUID, event models.FeedEvent) error

	// List user's feed events in insertion order. Returns a copy.
	ListEvents(ctx context.Context, userID uuid.UUID) ([]models.FeedEvent, error)
}
