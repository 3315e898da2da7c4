package models

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalFailed     WithdrawalStatus = "failed"
	WithdrawalCancelled  WithdrawalStatus = "cancelled"
)

type PayoutMethod string

const (
	PayoutCard      PayoutMethod = "card"
	PayoutSBP       PayoutMethod = "sbp"
	PayoutTONWallet PayoutMethod = "ton_wallet"
)

func (m PayoutMethod) Validate() bool {
	switch m {
	case PayoutCard, PayoutSBP, PayoutTONWallet:
		return true
	}
	return false
}

type WithdrawalID string

func (w WithdrawalID) Validate() bool {
	_, err := uuid.Parse(string(w))
	return err == nil
}

type Withdrawal struct {
	WithdrawalID  WithdrawalID     `json:"withdrawal_id"`
	UserID        UserID           `json:"user_id"`
	Currency      string           `json:"currency"`
	Amount        float64          `json:"amount"`
	TaxWithheld   float64          `json:"tax_withheld"`
	NetAmount     float64          `json:"net_amount"`
	PayoutMethod  PayoutMethod     `json:"payout_method"`
	Destination   string           `json:"destination"`
	Status        WithdrawalStatus `json:"status"`
	FailureReason string           `json:"failure_reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	ProcessedAt   *time.Time       `json:"processed_at,omitempty"`
}

type WithdrawalRequest struct {
	Currency     string       `json:"currency"`
	Amount       float64      `json:"amount"`
	PayoutMethod PayoutMethod `json:"payout_method"`
	Destination  string       `json:"destination"`
}

func (r WithdrawalRequest) Validate() error {
	if r.Amount <= 0 || r.Currency == "" {
		return ErrIncorrectWithdrawal
	}
	if !r.PayoutMethod.Validate() || r.Destination == "" {
		return ErrIncorrectWithdrawal
	}
	return nil
}

// WithdrawalReceipt возвращается при успешной заявке на вывод.
type WithdrawalReceipt struct {
	WithdrawalID WithdrawalID `json:"withdrawal_id"`
	NetAmount    float64      `json:"net_amount"`
	TaxWithheld  float64      `json:"tax_withheld"`
}
