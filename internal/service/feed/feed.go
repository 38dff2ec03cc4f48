package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
	"github.com/julianpalmerio/minivenmo/internal/models"
	"github.com/julianpalmerio/minivenmo/internal/observability/metrics"
	"github.com/julianpalmerio/minivenmo/internal/repository"
)

// Notifier delivers a freshly recorded feed event to a user's live feed
type Notifier interface {
	Notify(username string, event models.FeedEvent)
}

type FeedService struct {
	storage  repository.Storage
	notifier Notifier
}

func NewService(storage repository.Storage, notifier Notifier) *FeedService {
	return &FeedService{
		storage:  storage,
		notifier: notifier,
	}
}

// AddFriend records the symmetric friendship and one friendship event on each
// user's feed. Befriending an existing friend is a no-op and records nothing.
func (s *FeedService) AddFriend(ctx context.Context, username string, friendName string) error {
	var ev models.FeedEvent
	var added bool

	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		user, err := st.Users().GetUser(ctx, username)
		if err != nil {
			return err
		}
		friend, err := st.Users().GetUser(ctx, friendName)
		if err != nil {
			return fmt.Errorf("friend: %w", err)
		}

		if user.ID == friend.ID {
			return apperrors.ErrSelfFriendship
		}

		added, err = st.Users().AddFriend(ctx, user.ID, friend.ID)
		if err != nil || !added {
			return err
		}

		ev = models.FeedEvent{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
			Type:      models.EventTypeFriendship,
			Actor:     user.Username,
			Target:    friend.Username,
		}

		if err := st.Feed().AppendEvent(ctx, user.ID, ev); err != nil {
			return err
		}
		return st.Feed().AppendEvent(ctx, friend.ID, ev)
	})
	if err != nil || !added {
		return err
	}

	metrics.FriendshipsTotal.Inc()
	if s.notifier != nil {
		s.notifier.Notify(ev.Actor, ev)
		s.notifier.Notify(ev.Target, ev)
	}
	return nil
}

// Feed returns the user's activity in the order entries were recorded
func (s *FeedService) Feed(ctx context.Context, username string) ([]models.FeedEvent, error) {
	var events []models.FeedEvent

	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		user, err := st.Users().GetUser(ctx, username)
		if err != nil {
			return err
		}

		events, err = st.Feed().ListEvents(ctx, user.ID)
		return err
	})
	return events, err
}
