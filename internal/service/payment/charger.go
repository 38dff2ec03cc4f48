package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// CardCharger is the boundary to the external card processor.
// A charge error aborts settlement before the payee is credited.
type CardCharger interface {
	Charge(ctx context.Context, cardNumber string, amount decimal.Decimal) error
}

// StubCharger approves every charge. The simulator has no card network
// behind it.
type StubCharger struct{}

func (StubCharger) Charge(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}
