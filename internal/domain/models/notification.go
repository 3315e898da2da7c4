package models

// Notification - разобранное уведомление платежного провайдера.
// Fields содержит все поля исходного payload кроме самой подписи,
// в том виде, в котором они участвуют в канонизации.
type Notification struct {
	ProviderRef    string
	ReportedStatus string
	Signature      string
	Fields         map[string]string
}

// NotificationResult - определенный исход применения уведомления.
// Applied=false без ошибки означает дубликат или нераспознанный статус:
// провайдер в обоих случаях должен получить 200.
type NotificationResult struct {
	Applied        bool          `json:"applied"`
	PaymentID      PaymentID     `json:"payment_id"`
	PreviousStatus PaymentStatus `json:"previous_status"`
	NewStatus      PaymentStatus `json:"new_status"`
}
