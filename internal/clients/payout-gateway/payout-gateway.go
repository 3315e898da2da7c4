package payoutgateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lumipack/billing/internal/clients"
)

type payoutGateway struct {
	client     *resty.Client
	retryCount int
	retryWait  time.Duration
}

type Option func(*payoutGateway)

func WithRetry(
	retryCount int,
	retryWaitTime time.Duration,
) Option {
	return func(p *payoutGateway) {
		p.retryCount = retryCount
		p.retryWait = retryWaitTime
	}
}

func New(url string, opts ...Option) *payoutGateway {
	gateway := apply(opts...)
	gateway.client = resty.New().SetBaseURL(url)

	if gateway.retryCount > 0 {
		gateway.client.
			SetRetryCount(gateway.retryCount).
			SetRetryWaitTime(gateway.retryWait).
			AddRetryCondition(
				func(r *resty.Response, err error) bool {
					return err == nil &&
						r.StatusCode() != http.StatusTooManyRequests &&
						r.StatusCode() != http.StatusInternalServerError
				},
			)
	}

	return gateway
}

// Payout отправляет заявку на выплату. Шлюз идемпотентен по
// withdrawal_id, поэтому повторная отправка той же заявки безопасна.
func (p *payoutGateway) Payout(ctx context.Context, order clients.PayoutOrder) (*clients.PayoutResult, time.Duration, error) {
	payoutResult := &clients.PayoutResult{}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(order).
		SetResult(payoutResult).
		SetError(payoutResult).
		Post("/api/v1/payouts")

	if err != nil {
		return nil, 0, fmt.Errorf("payout %v: %w", err, clients.ErrInternalError)
	}

	if resp.StatusCode() == http.StatusOK {
		return payoutResult, 0, nil
	}

	if resp.StatusCode() == http.StatusUnprocessableEntity {
		return nil, 0, fmt.Errorf("withdrawal %s: %s: %w",
			order.WithdrawalID, payoutResult.Reason, clients.ErrPayoutRejected)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		delay, err := strconv.Atoi(resp.Header().Get("Retry-After"))
		if err != nil {
			return nil, 0, fmt.Errorf("invalid response header 'Retry-After': %w", err)
		}

		return nil, time.Duration(delay) * time.Second, clients.ErrManyRequests
	}

	return nil, 0, clients.ErrInternalError
}

func apply(opts ...Option) *payoutGateway {
	gateway := &payoutGateway{}
	for _, fn := range opts {
		fn(gateway)
	}
	return gateway
}
