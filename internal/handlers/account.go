package handlers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
	"github.com/julianpalmerio/minivenmo/internal/handlers/render"
	"github.com/julianpalmerio/minivenmo/internal/logger"
	"github.com/julianpalmerio/minivenmo/internal/models"
)

type userResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Balance    float64 `json:"balance"`
	CardLinked bool    `json:"card_linked"`
}

func toUserResponse(u models.User) userResponse {
	balance, _ := u.Balance.Float64()
	return userResponse{
		ID:         u.ID.String(),
		Username:   u.Username,
		Balance:    balance,
		CardLinked: u.HasCard(),
	}
}

func handleCreateUser(s accountService, l logger.Logger) http.Handler {
	type request struct {
		Username   string          `json:"username" validate:"required,username"`
		Balance    decimal.Decimal `json:"balance"`
		CardNumber string          `json:"card_number" validate:"omitempty,card"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := s.CreateUser(r.Context(), data.Username, data.Balance, data.CardNumber)

		switch {
		case err == nil:
			render.JSON(w, toUserResponse(user))
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.ServiceError(w, "User already exists", http.StatusConflict)
		case errors.Is(err, apperrors.ErrUsernameInvalid):
			render.ServiceError(w, "Username not valid", http.StatusUnprocessableEntity)
		case errors.Is(err, apperrors.ErrCardNotAccepted):
			render.ServiceError(w, "Invalid credit card number", http.StatusUnprocessableEntity)
		case errors.Is(err, apperrors.ErrAmountNotPositive):
			render.ServiceError(w, "Initial balance must not be negative", http.StatusUnprocessableEntity)
		default:
			l.Error("Failed to create user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleGetUser(s accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.GetUser(r.Context(), r.PathValue("username"))

		switch {
		case err == nil:
			render.JSON(w, toUserResponse(user))
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to get user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleDeposit(s accountService, l logger.Logger) http.Handler {
	type request struct {
		Amount decimal.Decimal `json:"amount" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := s.Deposit(r.Context(), r.PathValue("username"), data.Amount)

		switch {
		case err == nil:
			render.JSON(w, toUserResponse(user))
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrAmountNotPositive):
			render.ServiceError(w, "Amount must be positive", http.StatusUnprocessableEntity)
		default:
			l.Error("Failed to deposit", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleLinkCard(s accountService, l logger.Logger) http.Handler {
	type request struct {
		CardNumber string `json:"card_number" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := s.LinkCard(r.Context(), r.PathValue("username"), data.CardNumber)

		switch {
		case err == nil:
			render.JSON(w, toUserResponse(user))
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrCardNotAccepted):
			render.ServiceError(w, "Invalid credit card number", http.StatusUnprocessableEntity)
		case errors.Is(err, apperrors.ErrCardAlreadyLinked):
			render.ServiceError(w, "Only one credit card per user", http.StatusConflict)
		default:
			l.Error("Failed to link card", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
