package clients

import "errors"

var (
	ErrPayoutRejected = errors.New("payout rejected")
	ErrInternalError  = errors.New("internal error")
	ErrManyRequests   = errors.New("many requests")
)

// PayoutOrder - заявка на выплату в платежный шлюз.
type PayoutOrder struct {
	WithdrawalID string  `json:"withdrawal_id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Method       string  `json:"method"`
	Destination  string  `json:"destination"`
}

// PayoutResult - ответ шлюза на заявку.
type PayoutResult struct {
	WithdrawalID string `json:"withdrawal_id"`
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
}
