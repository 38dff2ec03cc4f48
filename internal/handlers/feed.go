package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
	"github.com/julianpalmerio/minivenmo/internal/handlers/render"
	"github.com/julianpalmerio/minivenmo/internal/logger"
	"github.com/julianpalmerio/minivenmo/internal/models"
	"github.com/julianpalmerio/minivenmo/internal/service/feed"
	"github.com/julianpalmerio/minivenmo/internal/stream"
)

func handleAddFriend(s feedService, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username" validate:"required,username"`
	}

	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		err = s.AddFriend(r.Context(), r.PathValue("username"), data.Username)

		switch {
		case err == nil:
			render.JSON(w, response{Message: "Friend added"})
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrSelfFriendship):
			render.ServiceError(w, "User cannot befriend themselves", http.StatusUnprocessableEntity)
		default:
			l.Error("Failed to add friend", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleFeed(s feedService, l logger.Logger) http.Handler {
	type event struct {
		Type      string    `json:"type"`
		Actor     string    `json:"actor"`
		Target    string    `json:"target"`
		PaymentID string    `json:"payment_id,omitempty"`
		Amount    float64   `json:"amount,omitempty"`
		Note      string    `json:"note,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	type response struct {
		Lines  []string `json:"lines"`
		Events []event  `json:"events"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		events, err := s.Feed(r.Context(), r.PathValue("username"))

		switch {
		case err == nil:
			out := response{
				Lines:  feed.RenderFeed(events),
				Events: make([]event, 0, len(events)),
			}
			for _, e := range events {
				item := event{
					Type:      e.Type,
					Actor:     e.Actor,
					Target:    e.Target,
					CreatedAt: e.CreatedAt,
				}
				if e.Type == models.EventTypePayment {
					amount, _ := e.Amount.Float64()
					item.PaymentID = e.PaymentID.String()
					item.Amount = amount
					item.Note = e.Note
				}
				out.Events = append(out.Events, item)
			}
			render.JSON(w, out)
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to get feed", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

func handleFeedStream(s accountService, hub *stream.Hub, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.PathValue("username")

		// Reject unknown users before upgrading the connection
		if _, err := s.GetUser(r.Context(), username); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.ServiceError(w, "User not found", http.StatusNotFound)
			default:
				l.Error("Failed to resolve feed subscriber", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied to the client
			l.Warn("Websocket upgrade failed", "error", err)
			return
		}

		hub.Subscribe(username, conn)
	})
}
