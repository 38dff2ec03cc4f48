package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
	"github.com/julianpalmerio/minivenmo/internal/models"
)

type FeedRepo struct {
	s *Storage
}

func (r *FeedRepo) AppendEvent(_ context.Context, userID uuid.UUID, event models.FeedEvent) error {
	defer r.s.lock()()

	if _, ok := r.s.st.names[userID]; !ok {
		return apperrors.ErrUserNotFound
	}

	r.s.st.feeds[userID] = append(r.s.st.feeds[userID], event)
	return nil
}

func (r *FeedRepo) ListEvents(_ context.Context, userID uuid.UUID) ([]models.FeedEvent, error) {
	defer r.s.rlock()()

	if _, ok := r.s.st.names[userID]; !ok {
		return nil, apperrors.ErrUserNotFound
	}

	return slices.Clone(r.s.st.feeds[userID]), nil
}
