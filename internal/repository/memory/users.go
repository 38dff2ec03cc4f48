package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
	"github.com/julianpalmerio/minivenmo/internal/models"
)

type UserRepo struct {
	s *Storage
}

func (r *UserRepo) CreateUser(_ context.Context, username string) (models.User, error) {
	defer r.s.lock()()

	if _, ok := r.s.st.users[username]; ok {
		return models.User{}, apperrors.ErrUserAlreadyExists
	}

	user := models.User{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Username:  username,
		Balance:   decimal.Zero,
	}

	r.s.st.users[username] = user
	r.s.st.names[user.ID] = username

	return user, nil
}

func (r *UserRepo) GetUser(_ context.Context, username string) (models.User, error) {
	defer r.s.rlock()()
	return r.getUser(username)
}

func (r *UserRepo) GetUserByID(_ context.Context, userID uuid.UUID) (models.User, error) {
	defer r.s.rlock()()

	username, ok := r.s.st.names[userID]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return r.getUser(username)
}

func (r *UserRepo) UpdateBalance(_ context.Context, userID uuid.UUID, delta decimal.Decimal) (models.User, error) {
	defer r.s.lock()()

	username, ok := r.s.st.names[userID]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}

	user := r.s.st.users[username]
	next := user.Balance.Add(delta)
	if next.IsNegative() {
		return models.User{}, apperrors.ErrBalanceInsufficient
	}

	user.Balance = next
	r.s.st.users[username] = user

	return r.withFriends(user), nil
}

func (r *UserRepo) LinkCard(_ context.Context, userID uuid.UUID, number string) (models.User, error) {
	defer r.s.lock()()

	username, ok := r.s.st.names[userID]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}

	user := r.s.st.users[username]
	if user.HasCard() {
		return models.User{}, apperrors.ErrCardAlreadyLinked
	}

	user.CardNumber = number
	r.s.st.users[username] = user

	return r.withFriends(user), nil
}

func (r *UserRepo) AddFriend(_ context.Context, userID uuid.UUID, friendID uuid.UUID) (bool, error) {
	defer r.s.lock()()

	for _, id := range []uuid.UUID{userID, friendID} {
		if _, ok := r.s.st.names[id]; !ok {
			return false, apperrors.ErrUserNotFound
		}
	}

	if slices.Contains(r.s.st.friends[userID], friendID) {
		return false, nil
	}

	r.s.st.friends[userID] = append(r.s.st.friends[userID], friendID)
	r.s.st.friends[friendID] = append(r.s.st.friends[friendID], userID)

	return true, nil
}

// getUser returns a copy of the stored user, friends slice included.
// Caller must hold the lock.
func (r *UserRepo) getUser(username string) (models.User, error) {
	user, ok := r.s.st.users[username]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return r.withFriends(user), nil
}

func (r *UserRepo) withFriends(user models.User) models.User {
	user.Friends = slices.Clone(r.s.st.friends[user.ID])
	return user
}
