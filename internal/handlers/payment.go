package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
	"github.com/julianpalmerio/minivenmo/internal/handlers/render"
	"github.com/julianpalmerio/minivenmo/internal/logger"
)

func handlePay(s paymentService, l logger.Logger) http.Handler {
	type request struct {
		Target string          `json:"target" validate:"required,username"`
		Amount decimal.Decimal `json:"amount" validate:"required"`
		Note   string          `json:"note"`
	}

	type response struct {
		ID        string    `json:"id"`
		Actor     string    `json:"actor"`
		Target    string    `json:"target"`
		Amount    float64   `json:"amount"`
		Note      string    `json:"note"`
		Method    string    `json:"method"`
		CreatedAt time.Time `json:"created_at"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := r.PathValue("username")

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		p, err := s.Pay(r.Context(), actor, data.Target, data.Amount, data.Note)

		switch {
		case err == nil:
			amount, _ := p.Amount.Float64()
			render.JSON(w, response{
				ID:        p.ID.String(),
				Actor:     actor,
				Target:    data.Target,
				Amount:    amount,
				Note:      p.Note,
				Method:    p.Method,
				CreatedAt: p.CreatedAt,
			})
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrSelfPayment):
			render.ServiceError(w, "User cannot pay themselves", http.StatusUnprocessableEntity)
		case errors.Is(err, apperrors.ErrAmountNotPositive):
			render.ServiceError(w, "Amount must be positive", http.StatusUnprocessableEntity)
		case errors.Is(err, apperrors.ErrBalanceInsufficient), errors.Is(err, apperrors.ErrNoCardLinked):
			render.ServiceError(w, "Insufficient funds and no usable card", http.StatusPaymentRequired)
		case errors.Is(err, apperrors.ErrCardDeclined):
			render.ServiceError(w, "Credit card declined", http.StatusPaymentRequired)
		default:
			l.Error("Failed to settle payment", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
