package models

import "time"

type EarningStatus string

const (
	EarningPending   EarningStatus = "pending"
	EarningCredited  EarningStatus = "credited"
	EarningCancelled EarningStatus = "cancelled"
)

// Earning - комиссия реферера за один конкретный платеж.
// Ставка фиксируется в момент создания и больше не пересчитывается.
type Earning struct {
	EarningID      string        `json:"earning_id"`
	PaymentID      PaymentID     `json:"payment_id"`
	ReferrerID     UserID        `json:"referrer_id"`
	ReferredID     UserID        `json:"referred_id"`
	Amount         float64       `json:"amount"`
	Rate           float64       `json:"rate"`
	NativeAmount   float64       `json:"native_amount"`
	Currency       string        `json:"currency"`
	Status         EarningStatus `json:"status"`
	FulfillmentRef string        `json:"fulfillment_ref,omitempty"`
	CancelReason   string        `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	CreditedAt     *time.Time    `json:"credited_at,omitempty"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty"`
}

// EarningOutcome - исход идемпотентной операции леджера начислений.
// Все значения, кроме явных ошибок, считаются успехом.
type EarningOutcome string

const (
	EarningCreatedOutcome    EarningOutcome = "created"
	EarningAlreadyProcessed  EarningOutcome = "already_processed"
	EarningNoReferrer        EarningOutcome = "no_referrer"
	EarningSkippedExternal   EarningOutcome = "skipped_external_provider"
	EarningCreditedOutcome   EarningOutcome = "credited"
	EarningAlreadyCredited   EarningOutcome = "already_credited"
	EarningCancelledOutcome  EarningOutcome = "cancelled"
	EarningAlreadyCancelled  EarningOutcome = "already_cancelled"
	EarningNoEarningOutcome  EarningOutcome = "no_earning"
)

// ReferrerProfile - параметры комиссии реферера.
// CommissionRate == nil означает ставку по умолчанию.
type ReferrerProfile struct {
	UserID         UserID   `json:"user_id"`
	IsPartner      bool     `json:"is_partner"`
	CommissionRate *float64 `json:"commission_rate,omitempty"`
}

func (p ReferrerProfile) Validate() error {
	if !p.UserID.Validate() {
		return ErrUserIDMandatory
	}
	if p.CommissionRate != nil &&
		(*p.CommissionRate <= 0 || *p.CommissionRate > 1) {
		return ErrIncorrectCommissionRate
	}
	return nil
}
