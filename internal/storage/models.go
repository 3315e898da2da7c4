package storage

import "time"

type Payment struct {
	PaymentID   string    `db:"payment_id"`
	UserID      string    `db:"user_id"`
	Provider    string    `db:"provider"`
	ProviderRef string    `db:"provider_ref"`
	Amount      float64   `db:"amount"`
	Currency    string    `db:"currency"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type CreatePayment struct {
	PaymentID   string
	UserID      string
	Provider    string
	ProviderRef string
	Amount      float64
	Currency    string
}

type ReferrerProfile struct {
	UserID         string   `db:"user_id"`
	IsPartner      bool     `db:"is_partner"`
	CommissionRate *float64 `db:"commission_rate"`
}

type Earning struct {
	EarningID      string     `db:"earning_id"`
	PaymentID      string     `db:"payment_id"`
	ReferrerID     string     `db:"referrer_id"`
	ReferredID     string     `db:"referred_id"`
	Amount         float64    `db:"amount"`
	Rate           float64    `db:"rate"`
	NativeAmount   float64    `db:"native_amount"`
	Currency       string     `db:"currency"`
	Status         string     `db:"status"`
	FulfillmentRef *string    `db:"fulfillment_ref"`
	CancelReason   *string    `db:"cancel_reason"`
	CreatedAt      time.Time  `db:"created_at"`
	CreditedAt     *time.Time `db:"credited_at"`
	CancelledAt    *time.Time `db:"cancelled_at"`
}

type CreateEarning struct {
	PaymentID    string
	ReferrerID   string
	ReferredID   string
	Amount       float64
	Rate         float64
	NativeAmount float64
	Currency     string
}

type Balance struct {
	Currency  string  `db:"currency"`
	Available float64 `db:"available"`
	Earned    float64 `db:"earned"`
	Withdrawn float64 `db:"withdrawn"`
}

type Withdrawal struct {
	WithdrawalID  string     `db:"withdrawal_id"`
	UserID        string     `db:"user_id"`
	Currency      string     `db:"currency"`
	Amount        float64    `db:"amount"`
	TaxWithheld   float64    `db:"tax_withheld"`
	NetAmount     float64    `db:"net_amount"`
	PayoutMethod  string     `db:"payout_method"`
	Destination   string     `db:"destination"`
	Status        string     `db:"status"`
	FailureReason *string    `db:"failure_reason"`
	CreatedAt     time.Time  `db:"created_at"`
	ProcessedAt   *time.Time `db:"processed_at"`
}

type CreateWithdrawal struct {
	WithdrawalID string
	UserID       string
	Currency     string
	Amount       float64
	TaxWithheld  float64
	NetAmount    float64
	PayoutMethod string
	Destination  string
	// Минимальный порог вывода, проверяется под блокировкой баланса.
	MinAmount float64
}
