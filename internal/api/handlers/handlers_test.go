package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/lumipack/billing/internal/api/handlers/mocks"
	"github.com/lumipack/billing/internal/domain/models"
)

const (
	testPaymentID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testUserID    = "06223dff-1f8f-4430-923f-1072e67e70ce"
)

func contextWithToken(t *testing.T, userID string) context.Context {
	token, err := jwt.NewBuilder().
		Issuer("lumipack-billing").
		Audience([]string{userID}).
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Minute*3)).
		Claim("userID", userID).
		Build()

	require.NoError(t, err)

	return context.WithValue(context.Background(), jwtauth.TokenCtxKey, token)
}

func requestWithProvider(t *testing.T, provider, body string) *http.Request {
	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("/api/v1/webhooks/%s", provider),
		strings.NewReader(body),
	)
	require.NoError(t, err)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("provider", provider)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandlers_ProviderWebhook(t *testing.T) {
	webhookBody := `{"provider_ref":"bank-777","status":"succeeded","amount":"2990","signature":"aabbcc"}`
	notification := models.Notification{
		ProviderRef:    "bank-777",
		ReportedStatus: "succeeded",
		Signature:      "aabbcc",
		Fields: map[string]string{
			"provider_ref": "bank-777",
			"status":       "succeeded",
			"amount":       "2990",
		},
	}

	type mockParam struct {
		callMock bool
		result   *models.NotificationResult
		err      error
	}
	tests := []struct {
		name           string
		provider       string
		body           string
		mock           mockParam
		expectedStatus int
	}{
		{
			name:           "неизвестный провайдер",
			provider:       "paypal",
			body:           webhookBody,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "пустое тело запроса",
			provider:       "bank",
			body:           "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "payload без подписи",
			provider:       "bank",
			body:           `{"provider_ref":"bank-777","status":"succeeded"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "неверная подпись",
			provider: "bank",
			body:     webhookBody,
			mock: mockParam{
				callMock: true,
				err:      models.ErrInvalidSignature,
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:     "платеж не найден",
			provider: "bank",
			body:     webhookBody,
			mock: mockParam{
				callMock: true,
				err:      models.ErrUnknownPayment,
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:     "уведомление применено",
			provider: "bank",
			body:     webhookBody,
			mock: mockParam{
				callMock: true,
				result: &models.NotificationResult{
					Applied:        true,
					PaymentID:      testPaymentID,
					PreviousStatus: models.PaymentPending,
					NewStatus:      models.PaymentSucceeded,
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "повторная доставка - тоже 200",
			provider: "bank",
			body:     webhookBody,
			mock: mockParam{
				callMock: true,
				result: &models.NotificationResult{
					Applied:        false,
					PaymentID:      testPaymentID,
					PreviousStatus: models.PaymentSucceeded,
					NewStatus:      models.PaymentSucceeded,
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "конфликт отмены зачисленного начисления - тоже 200",
			provider: "bank",
			body:     webhookBody,
			mock: mockParam{
				callMock: true,
				result: &models.NotificationResult{
					Applied:        true,
					PaymentID:      testPaymentID,
					PreviousStatus: models.PaymentSucceeded,
					NewStatus:      models.PaymentRefunded,
				},
				err: models.ErrEarningAlreadyCredited,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "внутренняя ошибка сервера",
			provider: "bank",
			body:     webhookBody,
			mock: mockParam{
				callMock: true,
				err:      fmt.Errorf("failed to connect to the database"),
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := mocks.NewService(t)
			handlers := NewHandlers(srv, nil)

			if tt.mock.callMock {
				srv.On("ApplyNotification",
					mock.AnythingOfType("*context.timerCtx"),
					models.PaymentProvider(tt.provider),
					notification,
				).Return(tt.mock.result, tt.mock.err)
			}

			rr := httptest.NewRecorder()
			handlers.ProviderWebhook(rr, requestWithProvider(t, tt.provider, tt.body))

			result := rr.Result()
			defer result.Body.Close()
			assert.Equal(t, tt.expectedStatus, result.StatusCode)
		})
	}
}

func TestHandlers_RegisterPayment(t *testing.T) {
	body := fmt.Sprintf(
		`{"payment_id":"%s","user_id":"%s","provider":"bank","provider_ref":"bank-777","amount":2990,"currency":"RUB"}`,
		testPaymentID, testUserID,
	)
	payment := models.CreatePayment{
		PaymentID:   testPaymentID,
		UserID:      testUserID,
		Provider:    models.ProviderBank,
		ProviderRef: "bank-777",
		Amount:      2990,
		Currency:    "RUB",
	}

	type mockParam struct {
		callMock bool
		err      error
	}
	tests := []struct {
		name           string
		body           string
		mock           mockParam
		expectedStatus int
	}{
		{
			name:           "пустое тело запроса",
			body:           "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "платеж зарегистрирован",
			body:           body,
			mock:           mockParam{callMock: true},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "повторная регистрация",
			body: body,
			mock: mockParam{
				callMock: true,
				err:      models.ErrPaymentAlreadyExists,
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "неверные параметры",
			body: body,
			mock: mockParam{
				callMock: true,
				err:      models.ErrIncorrectPayment,
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := mocks.NewService(t)
			handlers := NewHandlers(srv, nil)

			if tt.mock.callMock {
				srv.On("RegisterPayment",
					mock.AnythingOfType("*context.timerCtx"),
					payment,
				).Return(tt.mock.err)
			}

			rr := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			require.NoError(t, err)

			handlers.RegisterPayment(rr, req)

			result := rr.Result()
			defer result.Body.Close()
			assert.Equal(t, tt.expectedStatus, result.StatusCode)
		})
	}
}

func TestHandlers_ConfirmFulfillment(t *testing.T) {
	body := fmt.Sprintf(`{"payment_id":"%s","fulfillment_ref":"order-42"}`, testPaymentID)

	type mockParam struct {
		callMock bool
		outcome  models.EarningOutcome
		err      error
	}
	tests := []struct {
		name           string
		body           string
		mock           mockParam
		expectedStatus int
	}{
		{
			name: "начисление зачислено",
			body: body,
			mock: mockParam{
				callMock: true,
				outcome:  models.EarningCreditedOutcome,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "повторное подтверждение - no-op",
			body: body,
			mock: mockParam{
				callMock: true,
				outcome:  models.EarningAlreadyCredited,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "начисление уже отменено",
			body: body,
			mock: mockParam{
				callMock: true,
				err:      models.ErrEarningAlreadyCancelled,
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := mocks.NewService(t)
			handlers := NewHandlers(srv, nil)

			if tt.mock.callMock {
				srv.On("CreditEarning",
					mock.AnythingOfType("*context.timerCtx"),
					models.PaymentID(testPaymentID),
					"order-42",
				).Return(tt.mock.outcome, tt.mock.err)
			}

			rr := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			require.NoError(t, err)

			handlers.ConfirmFulfillment(rr, req)

			result := rr.Result()
			defer result.Body.Close()
			assert.Equal(t, tt.expectedStatus, result.StatusCode)
		})
	}
}

func TestHandlers_RefundPayment_Conflict(t *testing.T) {
	srv := mocks.NewService(t)
	handlers := NewHandlers(srv, nil)

	srv.On("Refund",
		mock.AnythingOfType("*context.timerCtx"),
		models.PaymentID(testPaymentID),
		"fraud",
	).Return(models.EarningOutcome(""), models.ErrEarningAlreadyCredited)

	rr := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodPost,
		"/",
		strings.NewReader(fmt.Sprintf(`{"payment_id":"%s","reason":"fraud"}`, testPaymentID)),
	)
	require.NoError(t, err)

	handlers.RefundPayment(rr, req)

	result := rr.Result()
	defer result.Body.Close()
	assert.Equal(t, http.StatusConflict, result.StatusCode)
}

func TestHandlers_AttachReferral_Duplicate(t *testing.T) {
	srv := mocks.NewService(t)
	handlers := NewHandlers(srv, nil)

	referrerID := "1cf50925-d72d-488b-94e5-426acce77f3c"

	srv.On("AttachReferral",
		mock.AnythingOfType("*context.timerCtx"),
		mock.AnythingOfType("models.Referral"),
	).Return(models.ErrReferralAlreadyExists)

	rr := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodPost,
		"/",
		strings.NewReader(fmt.Sprintf(
			`{"referred_user_id":"%s","referrer_id":"%s"}`,
			testUserID, referrerID,
		)),
	)
	require.NoError(t, err)

	handlers.AttachReferral(rr, req)

	result := rr.Result()
	defer result.Body.Close()
	// повторная привязка ничего не меняет и не ошибка
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestHandlers_RequestWithdrawal(t *testing.T) {
	body := `{"currency":"RUB","amount":10000,"payout_method":"card","destination":"2200150000000004"}`

	t.Run("заявка принята", func(t *testing.T) {
		srv := mocks.NewService(t)
		handlers := NewHandlers(srv, nil)

		srv.On("RequestWithdrawal",
			mock.AnythingOfType("*context.timerCtx"),
			models.UserID(testUserID),
			models.WithdrawalRequest{
				Currency:     "RUB",
				Amount:       10000,
				PayoutMethod: models.PayoutCard,
				Destination:  "2200150000000004",
			},
		).Return(&models.WithdrawalReceipt{
			WithdrawalID: "c4b60665-2d74-4f7a-b012-5ee8b29b0e3f",
			NetAmount:    8700,
			TaxWithheld:  1300,
		}, nil)

		rr := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		require.NoError(t, err)
		req = req.WithContext(contextWithToken(t, testUserID))

		handlers.RequestWithdrawal(rr, req)

		result := rr.Result()
		defer result.Body.Close()
		require.Equal(t, http.StatusAccepted, result.StatusCode)

		receipt := models.WithdrawalReceipt{}
		require.NoError(t, json.NewDecoder(result.Body).Decode(&receipt))
		assert.Equal(t, 8700.0, receipt.NetAmount)
		assert.Equal(t, 1300.0, receipt.TaxWithheld)
	})

	t.Run("недостаточно средств - 402 с точным остатком", func(t *testing.T) {
		srv := mocks.NewService(t)
		handlers := NewHandlers(srv, nil)

		srv.On("RequestWithdrawal",
			mock.AnythingOfType("*context.timerCtx"),
			models.UserID(testUserID),
			mock.AnythingOfType("models.WithdrawalRequest"),
		).Return(nil, &models.InsufficientFundsError{
			Available: 4999.5,
			Currency:  "RUB",
		})

		rr := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		require.NoError(t, err)
		req = req.WithContext(contextWithToken(t, testUserID))

		handlers.RequestWithdrawal(rr, req)

		result := rr.Result()
		defer result.Body.Close()
		require.Equal(t, http.StatusPaymentRequired, result.StatusCode)

		payload := models.InsufficientFundsError{}
		require.NoError(t, json.NewDecoder(result.Body).Decode(&payload))
		assert.Equal(t, 4999.5, payload.Available)
		assert.Equal(t, "RUB", payload.Currency)
	})
}

func TestHandlers_BalanceByUser(t *testing.T) {
	srv := mocks.NewService(t)
	handlers := NewHandlers(srv, nil)

	srv.On("UserBalances",
		mock.AnythingOfType("*context.timerCtx"),
		models.UserID(testUserID),
	).Return([]models.Balance{
		{Currency: "RUB", Available: 1500, Earned: 2000, Withdrawn: 500},
	}, nil)

	rr := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	req = req.WithContext(contextWithToken(t, testUserID))

	handlers.BalanceByUser(rr, req)

	result := rr.Result()
	defer result.Body.Close()
	require.Equal(t, http.StatusOK, result.StatusCode)

	balances := []models.Balance{}
	require.NoError(t, json.NewDecoder(result.Body).Decode(&balances))
	require.Len(t, balances, 1)
	assert.Equal(t, 1500.0, balances[0].Available)
}

func TestHandlers_HistoryWithdrawals_Empty(t *testing.T) {
	srv := mocks.NewService(t)
	handlers := NewHandlers(srv, nil)

	srv.On("WithdrawalsByUser",
		mock.AnythingOfType("*context.timerCtx"),
		models.UserID(testUserID),
	).Return(nil, models.ErrNoRecordsFound)

	rr := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	req = req.WithContext(contextWithToken(t, testUserID))

	handlers.HistoryWithdrawals(rr, req)

	result := rr.Result()
	defer result.Body.Close()
	assert.Equal(t, http.StatusNoContent, result.StatusCode)
}

func TestHandlers_Ready(t *testing.T) {
	t.Run("база доступна", func(t *testing.T) {
		p := mocks.NewPinger(t)
		handlers := NewHandlers(nil, p)

		p.On("Ping", mock.AnythingOfType("*context.timerCtx")).Return(nil)

		rr := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/ready", nil)
		require.NoError(t, err)

		handlers.Ready(rr, req)

		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})

	t.Run("база недоступна", func(t *testing.T) {
		p := mocks.NewPinger(t)
		handlers := NewHandlers(nil, p)

		p.On("Ping", mock.AnythingOfType("*context.timerCtx")).
			Return(fmt.Errorf("connection refused"))

		rr := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/ready", nil)
		require.NoError(t, err)

		handlers.Ready(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}
