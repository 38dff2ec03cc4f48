package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
	"github.com/julianpalmerio/minivenmo/internal/repository/memory"
)

func TestAccount_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("create ok", func(t *testing.T) {
		s := NewService(memory.NewStorage())

		user, err := s.CreateUser(t.Context(), "Bobby", decimal.NewFromFloat(5.00), "4111111111111111")

		require.NoError(t, err, "creating user with valid data should be ok")
		require.Equal(t, "Bobby", user.Username)
		require.True(t, user.Balance.Equal(decimal.NewFromFloat(5.00)), "initial balance should be funded")
		require.Equal(t, "4111111111111111", user.CardNumber)
	})

	t.Run("create without card ok", func(t *testing.T) {
		s := NewService(memory.NewStorage())

		user, err := s.CreateUser(t.Context(), "Bobby", decimal.Zero, "")

		require.NoError(t, err, "card is optional")
		require.False(t, user.HasCard())
		require.True(t, user.Balance.IsZero())
	})

	t.Run("invalid username fail", func(t *testing.T) {
		s := NewService(memory.NewStorage())

		for _, username := range []string{"", "bob", "way-too-long-username", "bob by"} {
			_, err := s.CreateUser(t.Context(), username, decimal.Zero, "")

			require.Error(t, err, "username %q should be rejected", username)
			require.ErrorIs(t, err, apperrors.ErrUsernameInvalid)
		}
	})

	t.Run("bad card fail", func(t *testing.T) {
		s := NewService(memory.NewStorage())

		_, err := s.CreateUser(t.Context(), "Bobby", decimal.Zero, "123456")

		require.ErrorIs(t, err, apperrors.ErrCardNotAccepted)

		// Nothing should be left behind after the failed creation
		_, err = s.GetUser(t.Context(), "Bobby")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound, "failed creation should not register the user")
	})

	t.Run("negative initial balance fail", func(t *testing.T) {
		s := NewService(memory.NewStorage())

		_, err := s.CreateUser(t.Context(), "Bobby", decimal.NewFromInt(-1), "")

		require.ErrorIs(t, err, apperrors.ErrAmountNotPositive)
	})

	t.Run("duplicate fail", func(t *testing.T) {
		s := NewService(memory.NewStorage())

		_, err := s.CreateUser(t.Context(), "Bobby", decimal.Zero, "")
		require.NoError(t, err)

		_, err = s.CreateUser(t.Context(), "Bobby", decimal.Zero, "")
		require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
	})
}

func TestAccount_Deposit(t *testing.T) {
	t.Parallel()

	t.Run("deposit ok", func(t *testing.T) {
		s := NewService(memory.NewStorage())
		_, err := s.CreateUser(t.Context(), "Bobby", decimal.NewFromInt(5), "")
		require.NoError(t, err)

		user, err := s.Deposit(t.Context(), "Bobby", decimal.NewFromFloat(2.50))

		require.NoError(t, err)
		require.True(t, user.Balance.Equal(decimal.NewFromFloat(7.50)), "expected balance 7.50, got %s", user.Balance)
	})

	t.Run("non-positive amount fail", func(t *testing.T) {
		s := NewService(memory.NewStorage())
		_, err := s.CreateUser(t.Context(), "Bobby", decimal.Zero, "")
		require.NoError(t, err)

		_, err = s.Deposit(t.Context(), "Bobby", decimal.Zero)
		require.ErrorIs(t, err, apperrors.ErrAmountNotPositive)

		_, err = s.Deposit(t.Context(), "Bobby", decimal.NewFromInt(-5))
		require.ErrorIs(t, err, apperrors.ErrAmountNotPositive)
	})

	t.Run("unknown user fail", func(t *testing.T) {
		s := NewService(memory.NewStorage())

		_, err := s.Deposit(t.Context(), "nobody", decimal.NewFromInt(5))

		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestAccount_LinkCard(t *testing.T) {
	t.Parallel()

	t.Run("link ok", func(t *testing.T) {
		s := NewService(memory.NewStorage())
		_, err := s.CreateUser(t.Context(), "Bobby", decimal.Zero, "")
		require.NoError(t, err)

		user, err := s.LinkCard(t.Context(), "Bobby", "4111111111111111")

		require.NoError(t, err)
		require.Equal(t, "4111111111111111", user.CardNumber)
	})

	t.Run("second link fail", func(t *testing.T) {
		s := NewService(memory.NewStorage())
		_, err := s.CreateUser(t.Context(), "Bobby", decimal.Zero, "4111111111111111")
		require.NoError(t, err)

		_, err = s.LinkCard(t.Context(), "Bobby", "4242424242424242")

		require.ErrorIs(t, err, apperrors.ErrCardAlreadyLinked)
	})

	t.Run("not accepted number fail", func(t *testing.T) {
		s := NewService(memory.NewStorage())
		_, err := s.CreateUser(t.Context(), "Bobby", decimal.Zero, "")
		require.NoError(t, err)

		_, err = s.LinkCard(t.Context(), "Bobby", "123456")

		require.ErrorIs(t, err, apperrors.ErrCardNotAccepted)
	})
}
