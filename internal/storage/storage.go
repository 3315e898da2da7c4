package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUniqueViolation   = errors.New("uniqueness is violated")
	ErrNoRecordsFound    = errors.New("no records found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConstraints       = errors.New("constraints error")
	ErrInternal          = errors.New("internal")
)

type Storage interface {
	CreatePayment(ctx context.Context, payment CreatePayment) error
	PaymentByProviderRef(ctx context.Context, provider, providerRef string) (*Payment, error)
	PaymentByID(ctx context.Context, paymentID string) (*Payment, error)
	// MarkPaymentSucceeded переводит платеж pending -> succeeded.
	// false без ошибки означает, что платеж уже не pending (повторная доставка).
	MarkPaymentSucceeded(ctx context.Context, paymentID string) (bool, error)
	SetPaymentStatus(ctx context.Context, paymentID string, status string) error

	CreateReferral(ctx context.Context, referredUserID, referrerID string) error
	ReferrerByReferred(ctx context.Context, referredUserID string) (string, error)
	UpsertReferrerProfile(ctx context.Context, profile ReferrerProfile) error
	ReferrerProfile(ctx context.Context, userID string) (*ReferrerProfile, error)

	// CreateEarning вставляет pending-начисление, охраняясь уникальностью
	// payment_id. false без ошибки - начисление уже существует.
	CreateEarning(ctx context.Context, earning CreateEarning) (bool, error)
	EarningByPaymentID(ctx context.Context, paymentID string) (*Earning, error)
	// CreditEarning одним стейтментом переводит начисление pending -> credited
	// и увеличивает earned/available баланса реферера.
	// false без ошибки - строка уже не pending.
	CreditEarning(ctx context.Context, paymentID, fulfillmentRef string) (bool, error)
	CancelEarning(ctx context.Context, paymentID, reason string) (bool, error)
	EarningsByReferrer(ctx context.Context, referrerID string) ([]Earning, error)

	UserBalances(ctx context.Context, userID string) ([]Balance, error)

	// CreateWithdrawal в одной транзакции блокирует строку баланса,
	// вычисляет доступный остаток за вычетом незавершенных выводов и
	// вставляет заявку. Возвращает доступный остаток в любом случае;
	// ErrInsufficientFunds - заявка отклонена.
	CreateWithdrawal(ctx context.Context, withdrawal CreateWithdrawal) (float64, error)
	WithdrawalsByUser(ctx context.Context, userID string) ([]Withdrawal, error)
	CancelWithdrawal(ctx context.Context, userID, withdrawalID string) (bool, error)
	ClaimPendingWithdrawals(ctx context.Context, limit uint32) ([]Withdrawal, error)
	CompleteWithdrawal(ctx context.Context, withdrawalID string) (bool, error)
	FailWithdrawal(ctx context.Context, withdrawalID, reason string) (bool, error)

	PaymentsMissingEarnings(ctx context.Context, limit uint32) ([]Payment, error)

	io.Closer
}
