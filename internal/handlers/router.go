package handlers

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/julianpalmerio/minivenmo/internal/handlers/middleware"
	"github.com/julianpalmerio/minivenmo/internal/logger"
	"github.com/julianpalmerio/minivenmo/internal/models"
	"github.com/julianpalmerio/minivenmo/internal/stream"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	accountService accountService,
	paymentService paymentService,
	feedService feedService,
	hub *stream.Hub,
	logger logger.Logger,
) http.Handler {
	api := http.NewServeMux()

	api.Handle("POST /users", handleCreateUser(accountService, logger))
	api.Handle("GET /users/{username}", handleGetUser(accountService, logger))
	api.Handle("POST /users/{username}/deposit", handleDeposit(accountService, logger))
	api.Handle("POST /users/{username}/card", handleLinkCard(accountService, logger))
	api.Handle("POST /users/{username}/pay", handlePay(paymentService, logger))
	api.Handle("POST /users/{username}/friends", handleAddFriend(feedService, logger))
	api.Handle("GET /users/{username}/feed", handleFeed(feedService, logger))
	api.Handle("GET /users/{username}/feed/live", handleFeedStream(accountService, hub, logger))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("GET /metrics", promhttp.Handler())

	handler := chain(root,
		middleware.LoggerMiddleware(logger),
		middleware.MetricsMiddleware(),
	)

	return handler
}

type accountService interface {
	// Create user, fund the initial balance and link the card in one go
	// Has to return apperrors.ErrUserAlreadyExists if the name is taken,
	// apperrors.ErrUsernameInvalid / apperrors.ErrCardNotAccepted on bad input
	CreateUser(ctx context.Context, username string, balance decimal.Decimal, cardNumber string) (models.User, error)

	// Get user by username
	// Has to return apperrors.ErrUserNotFound if user not found
	GetUser(ctx context.Context, username string) (models.User, error)

	// Add amount to the user balance
	Deposit(ctx context.Context, username string, amount decimal.Decimal) (models.User, error)

	// One time card link
	// Has to return apperrors.ErrCardAlreadyLinked on a second link
	LinkCard(ctx context.Context, username string, number string) (models.User, error)
}

type paymentService interface {
	// Settle a payment from balance or card depending on the actor's funds
	Pay(ctx context.Context, actor string, target string, amount decimal.Decimal, note string) (models.Payment, error)
}

type feedService interface {
	// Record a symmetric friendship visible in both feeds
	AddFriend(ctx context.Context, username string, friendName string) error

	// User's activity in recording order
	Feed(ctx context.Context, username string) ([]models.FeedEvent, error)
}
