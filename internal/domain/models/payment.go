package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentProvider string

const (
	ProviderBank  PaymentProvider = "bank"
	ProviderStars PaymentProvider = "stars"
	ProviderTON   PaymentProvider = "ton"
)

func (p PaymentProvider) Validate() bool {
	switch p {
	case ProviderBank, ProviderStars, ProviderTON:
		return true
	}
	return false
}

// ExternalCommission сообщает, что комиссия по этому каналу
// выплачивается внешней партнерской программой, а не нашим леджером.
func (p PaymentProvider) ExternalCommission() bool {
	return p == ProviderStars
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentCanceled  PaymentStatus = "canceled"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentID string

func (p PaymentID) Validate() bool {
	_, err := uuid.Parse(string(p))
	return err == nil
}

type Payment struct {
	PaymentID   PaymentID       `json:"payment_id"`
	UserID      UserID          `json:"user_id"`
	Provider    PaymentProvider `json:"provider"`
	ProviderRef string          `json:"provider_ref"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
	Status      PaymentStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreatePayment struct {
	PaymentID   PaymentID       `json:"payment_id"`
	UserID      UserID          `json:"user_id"`
	Provider    PaymentProvider `json:"provider"`
	ProviderRef string          `json:"provider_ref"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
}

func (c CreatePayment) Validate() error {
	if !c.PaymentID.Validate() {
		return ErrPaymentIDMandatory
	}
	if !c.UserID.Validate() {
		return ErrUserIDMandatory
	}
	if !c.Provider.Validate() {
		return ErrUnknownProvider
	}
	if c.ProviderRef == "" || c.Amount <= 0 || c.Currency == "" {
		return ErrIncorrectPayment
	}
	return nil
}
