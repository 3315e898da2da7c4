package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSignature = errors.New("invalid notification signature")
	ErrUnknownPayment   = errors.New("unknown payment reference")
	ErrUnknownProvider  = errors.New("unknown payment provider")

	// Конфликты состояния, требующие ручной сверки.
	ErrEarningAlreadyCredited  = errors.New("earning already credited")
	ErrEarningAlreadyCancelled = errors.New("earning already cancelled")

	ErrInsufficientFunds = errors.New("insufficient funds")

	ErrPaymentAlreadyExists  = errors.New("payment already exists")
	ErrReferralAlreadyExists = errors.New("referral already exists")
	ErrSelfReferral          = errors.New("self referral is not allowed")

	ErrInternal       = errors.New("internal error")
	ErrNoRecordsFound = errors.New("no records found")

	ErrUserIDMandatory         = errors.New("userID is a mandatory parameter")
	ErrPaymentIDMandatory      = errors.New("paymentID is a mandatory parameter")
	ErrWithdrawalIDMandatory   = errors.New("withdrawalID is a mandatory parameter")
	ErrIncorrectPayment        = errors.New("incorrect payment attributes")
	ErrIncorrectWithdrawal     = errors.New("incorrect withdrawal request")
	ErrIncorrectCommissionRate = errors.New("commission rate must be in (0,1]")
)

// InsufficientFundsError несет рассчитанный доступный остаток,
// чтобы вызывающая сторона могла показать точную нехватку.
type InsufficientFundsError struct {
	Available float64 `json:"available"`
	Currency  string  `json:"currency"`
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %.2f %s", e.Available, e.Currency)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
