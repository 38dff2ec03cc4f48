package apperrors

import (
	"errors"
)

var (
	ErrUsernameInvalid   = errors.New("username not valid")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrCardNotAccepted   = errors.New("credit card number not accepted")
	ErrCardAlreadyLinked = errors.New("only one credit card per user")
	ErrCardDeclined      = errors.New("credit card charge declined")

	ErrSelfPayment         = errors.New("user cannot pay themselves")
	ErrAmountNotPositive   = errors.New("amount must be a positive number")
	ErrNoCardLinked        = errors.New("must have a credit card to make a payment")
	ErrBalanceInsufficient = errors.New("insufficient balance")

	ErrSelfFriendship = errors.New("user cannot befriend themselves")
)
