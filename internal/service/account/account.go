package account

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
	"github.com/julianpalmerio/minivenmo/internal/models"
	"github.com/julianpalmerio/minivenmo/internal/observability/metrics"
	"github.com/julianpalmerio/minivenmo/internal/repository"
	"github.com/julianpalmerio/minivenmo/internal/service/validate"
)

type AccountService struct {
	// Repository to access the user registry
	storage repository.Storage
}

func NewService(storage repository.Storage) *AccountService {
	return &AccountService{
		storage: storage,
	}
}

// CreateUser registers a user, funds the initial balance and links the card.
// An empty cardNumber means no card. Any failure surfaces unchanged and
// leaves no user behind.
func (s *AccountService) CreateUser(ctx context.Context, username string, balance decimal.Decimal, cardNumber string) (models.User, error) {
	if err := validate.Username(username); err != nil {
		return models.User{}, err
	}
	if balance.IsNegative() {
		return models.User{}, fmt.Errorf("initial balance: %w", apperrors.ErrAmountNotPositive)
	}
	if cardNumber != "" {
		if err := validate.CardNumber(cardNumber); err != nil {
			return models.User{}, err
		}
	}

	var user models.User
	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		u, err := st.Users().CreateUser(ctx, username)
		if err != nil {
			return err
		}

		if balance.IsPositive() {
			u, err = st.Users().UpdateBalance(ctx, u.ID, balance)
			if err != nil {
				return fmt.Errorf("can't fund initial balance. Err: %w", err)
			}
		}

		if cardNumber != "" {
			u, err = st.Users().LinkCard(ctx, u.ID, cardNumber)
			if err != nil {
				return fmt.Errorf("can't link card. Err: %w", err)
			}
		}

		user = u
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	metrics.UsersCreatedTotal.Inc()
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, username string) (models.User, error) {
	return s.storage.Users().GetUser(ctx, username)
}

// Deposit adds amount to the user balance.
// The original simulator trusted callers to pass non-negative amounts, the
// HTTP surface cannot, so non-positive deposits are rejected here.
func (s *AccountService) Deposit(ctx context.Context, username string, amount decimal.Decimal) (models.User, error) {
	if !amount.IsPositive() {
		return models.User{}, apperrors.ErrAmountNotPositive
	}

	var user models.User
	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		u, err := st.Users().GetUser(ctx, username)
		if err != nil {
			return err
		}

		user, err = st.Users().UpdateBalance(ctx, u.ID, amount)
		return err
	})
	return user, err
}

// LinkCard performs the one-time card link.
func (s *AccountService) LinkCard(ctx context.Context, username string, number string) (models.User, error) {
	if err := validate.CardNumber(number); err != nil {
		return models.User{}, err
	}

	var user models.User
	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		u, err := st.Users().GetUser(ctx, username)
		if err != nil {
			return err
		}

		user, err = st.Users().LinkCard(ctx, u.ID, number)
		return err
	})
	return user, err
}
