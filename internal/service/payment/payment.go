package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/julianpalmerio/minivenmo/internal/apperrors"
	"github.com/julianpalmerio/minivenmo/internal/models"
	"github.com/julianpalmerio/minivenmo/internal/observability/metrics"
	"github.com/julianpalmerio/minivenmo/internal/repository"
)

// Notifier delivers a freshly recorded feed event to a user's live feed
type Notifier interface {
	Notify(username string, event models.FeedEvent)
}

type PaymentService struct {
	storage  repository.Storage
	charger  CardCharger
	notifier Notifier
}

func NewService(storage repository.Storage, charger CardCharger, notifier Notifier) *PaymentService {
	if charger == nil {
		charger = StubCharger{}
	}

	return &PaymentService{
		storage:  storage,
		charger:  charger,
		notifier: notifier,
	}
}

// Pay settles a payment from actor to target: from balance when the actor's
// balance covers the whole amount, from the card otherwise. On failure no
// balance and no feed changes.
func (s *PaymentService) Pay(ctx context.Context, actor string, target string, amount decimal.Decimal, note string) (models.Payment, error) {
	var p models.Payment
	var ev models.FeedEvent

	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		payer, err := st.Users().GetUser(ctx, actor)
		if err != nil {
			return err
		}

		if payer.Balance.GreaterThanOrEqual(amount) {
			p, ev, err = s.settleWithBalance(ctx, st, payer, target, amount, note)
		} else {
			p, ev, err = s.settleWithCard(ctx, st, payer, target, amount, note)
		}
		return err
	})
	if err != nil {
		metrics.PaymentFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return models.Payment{}, err
	}

	s.settled(p, ev)
	return p, nil
}

// PayWithBalance settles from the actor's balance only.
func (s *PaymentService) PayWithBalance(ctx context.Context, actor string, target string, amount decimal.Decimal, note string) (models.Payment, error) {
	return s.payWith(ctx, actor, target, amount, note, s.settleWithBalance)
}

// PayWithCard charges the actor's card and credits the target.
// The actor's balance is not touched.
func (s *PaymentService) PayWithCard(ctx context.Context, actor string, target string, amount decimal.Decimal, note string) (models.Payment, error) {
	return s.payWith(ctx, actor, target, amount, note, s.settleWithCard)
}

type settleFn func(ctx context.Context, st repository.Storage, payer models.User, target string, amount decimal.Decimal, note string) (models.Payment, models.FeedEvent, error)

func (s *PaymentService) payWith(ctx context.Context, actor string, target string, amount decimal.Decimal, note string, settle settleFn) (models.Payment, error) {
	var p models.Payment
	var ev models.FeedEvent

	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		payer, err := st.Users().GetUser(ctx, actor)
		if err != nil {
			return err
		}

		p, ev, err = settle(ctx, st, payer, target, amount, note)
		return err
	})
	if err != nil {
		metrics.PaymentFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return models.Payment{}, err
	}

	s.settled(p, ev)
	return p, nil
}

func (s *PaymentService) settleWithBalance(ctx context.Context, st repository.Storage, payer models.User, target string, amount decimal.Decimal, note string) (models.Payment, models.FeedEvent, error) {
	payee, err := s.checkParties(ctx, st, payer, target, amount)
	if err != nil {
		return models.Payment{}, models.FeedEvent{}, err
	}

	if payer.Balance.LessThan(amount) {
		return models.Payment{}, models.FeedEvent{}, apperrors.ErrBalanceInsufficient
	}

	if _, err := st.Users().UpdateBalance(ctx, payer.ID, amount.Neg()); err != nil {
		return models.Payment{}, models.FeedEvent{}, fmt.Errorf("can't deduct payer balance. Err: %w", err)
	}
	if _, err := st.Users().UpdateBalance(ctx, payee.ID, amount); err != nil {
		return models.Payment{}, models.FeedEvent{}, fmt.Errorf("can't credit payee balance. Err: %w", err)
	}

	return s.record(ctx, st, payer, payee, amount, note, models.PaymentMethodBalance)
}

func (s *PaymentService) settleWithCard(ctx context.Context, st repository.Storage, payer models.User, target string, amount decimal.Decimal, note string) (models.Payment, models.FeedEvent, error) {
	payee, err := s.checkParties(ctx, st, payer, target, amount)
	if err != nil {
		return models.Payment{}, models.FeedEvent{}, err
	}

	if !payer.HasCard() {
		return models.Payment{}, models.FeedEvent{}, apperrors.ErrNoCardLinked
	}

	if err := s.charger.Charge(ctx, payer.CardNumber, amount); err != nil {
		return models.Payment{}, models.FeedEvent{}, fmt.Errorf("%w: %v", apperrors.ErrCardDeclined, err)
	}

	if _, err := st.Users().UpdateBalance(ctx, payee.ID, amount); err != nil {
		return models.Payment{}, models.FeedEvent{}, fmt.Errorf("can't credit payee balance. Err: %w", err)
	}

	return s.record(ctx, st, payer, payee, amount, note, models.PaymentMethodCard)
}

// checkParties resolves the payee and applies the guards shared by both
// settlement paths: known payee, no self payment, positive amount.
func (s *PaymentService) checkParties(ctx context.Context, st repository.Storage, payer models.User, target string, amount decimal.Decimal) (models.User, error) {
	payee, err := st.Users().GetUser(ctx, target)
	if err != nil {
		return models.User{}, err
	}

	if payer.ID == payee.ID {
		return models.User{}, apperrors.ErrSelfPayment
	}
	if !amount.IsPositive() {
		return models.User{}, apperrors.ErrAmountNotPositive
	}

	return payee, nil
}

// record creates the payment and appends the matching feed event to both
// participants, payer first. Caller still holds the registry lock.
func (s *PaymentService) record(ctx context.Context, st repository.Storage, payer models.User, payee models.User, amount decimal.Decimal, note string, method string) (models.Payment, models.FeedEvent, error) {
	p := models.Payment{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Amount:    amount,
		ActorID:   payer.ID,
		TargetID:  payee.ID,
		Note:      note,
		Method:    method,
	}

	ev := models.FeedEvent{
		ID:        uuid.New(),
		CreatedAt: p.CreatedAt,
		Type:      models.EventTypePayment,
		Actor:     payer.Username,
		Target:    payee.Username,
		PaymentID: p.ID,
		Amount:    p.Amount,
		Note:      p.Note,
	}

	if err := st.Feed().AppendEvent(ctx, payer.ID, ev); err != nil {
		return models.Payment{}, models.FeedEvent{}, err
	}
	if err := st.Feed().AppendEvent(ctx, payee.ID, ev); err != nil {
		return models.Payment{}, models.FeedEvent{}, err
	}

	return p, ev, nil
}

func (s *PaymentService) settled(p models.Payment, ev models.FeedEvent) {
	metrics.PaymentsTotal.WithLabelValues(p.Method).Inc()
	amount, _ := p.Amount.Float64()
	metrics.PaymentAmount.Observe(amount)

	if s.notifier != nil {
		s.notifier.Notify(ev.Actor, ev)
		s.notifier.Notify(ev.Target, ev)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrSelfPayment):
		return "self_payment"
	case errors.Is(err, apperrors.ErrAmountNotPositive):
		return "bad_amount"
	case errors.Is(err, apperrors.ErrBalanceInsufficient):
		return "insufficient_balance"
	case errors.Is(err, apperrors.ErrNoCardLinked):
		return "no_card"
	case errors.Is(err, apperrors.ErrCardDeclined):
		return "card_declined"
	case errors.Is(err, apperrors.ErrUserNotFound):
		return "user_not_found"
	default:
		return "internal"
	}
}
