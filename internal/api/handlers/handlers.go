package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"

	"github.com/lumipack/billing/internal/domain/models"
	"github.com/lumipack/billing/internal/domain/response"
	"github.com/lumipack/billing/internal/logger"
	"github.com/lumipack/billing/internal/metrics"
	"github.com/lumipack/billing/internal/service/jwt"
)

var (
	ErrUserIDNotFound = errors.New("userID not found")
)

type Handler func(w http.ResponseWriter, r *http.Request) error

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		httplog.LogEntrySetField(
			r.Context(),
			"handler_error",
			slog.AnyValue(err),
		)
	}
}

//go:generate mockery --name service --exported
type service interface {
	ApplyNotification(ctx context.Context, provider models.PaymentProvider, notification models.Notification) (*models.NotificationResult, error)
	RegisterPayment(ctx context.Context, payment models.CreatePayment) error
	AttachReferral(ctx context.Context, referral models.Referral) error
	SetReferrerProfile(ctx context.Context, profile models.ReferrerProfile) error
	CreditEarning(ctx context.Context, paymentID models.PaymentID, fulfillmentRef string) (models.EarningOutcome, error)
	Refund(ctx context.Context, paymentID models.PaymentID, reason string) (models.EarningOutcome, error)
	UserBalances(ctx context.Context, userID models.UserID) ([]models.Balance, error)
	EarningsByReferrer(ctx context.Context, userID models.UserID) ([]models.Earning, error)
	RequestWithdrawal(ctx context.Context, userID models.UserID, request models.WithdrawalRequest) (*models.WithdrawalReceipt, error)
	CancelWithdrawal(ctx context.Context, userID models.UserID, withdrawalID models.WithdrawalID) error
	WithdrawalsByUser(ctx context.Context, userID models.UserID) ([]models.Withdrawal, error)
}

//go:generate mockery --name pinger --exported
type pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	log     *slog.Logger
	service service
	pinger  pinger
}

func NewHandlers(s service, p pinger) *Handlers {
	return &Handlers{
		log: logger.Logger().With(
			slog.String("component", "handlers"),
		),
		service: s,
		pinger:  p,
	}
}

// уведомление платежного провайдера о смене статуса платежа.
// Любой корректно подписанный дубликат должен получить 200,
// иначе провайдер будет повторять доставку бесконечно.
func (h *Handlers) ProviderWebhook(w http.ResponseWriter, r *http.Request) error {
	provider := models.PaymentProvider(chi.URLParam(r, "provider"))
	if !provider.Validate() {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("неизвестный провайдер"))
		return fmt.Errorf("provider %s: %w", provider, models.ErrUnknownProvider)
	}

	notification, err := decodeNotification(r)
	if err != nil {
		metrics.Metrics().NotificationInc(string(provider), "bad_request")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("неверный формат запроса"))
		return fmt.Errorf("decode notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*8)
	defer cancel()

	result, err := h.service.ApplyNotification(ctx, provider, *notification)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidSignature):
			metrics.Metrics().NotificationInc(string(provider), "invalid_signature")
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("неверная подпись"))
			return fmt.Errorf("apply notification: %w", err)

		case errors.Is(err, models.ErrUnknownPayment):
			metrics.Metrics().NotificationInc(string(provider), "unknown_payment")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("платеж не найден"))
			return fmt.Errorf("apply notification: %w", err)

		case errors.Is(err, models.ErrEarningAlreadyCredited):
			// возврат принят, но зачисленное начисление отменить нельзя -
			// конфликт уходит в лог и метрику, провайдеру отвечаем 200
			metrics.Metrics().CancelConflictInc()
			metrics.Metrics().NotificationInc(string(provider), "cancel_conflict")
			render.Status(r, http.StatusOK)
			render.JSON(w, r, result)
			return fmt.Errorf("apply notification: %w", err)

		default:
			metrics.Metrics().NotificationInc(string(provider), "error")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
			return fmt.Errorf("apply notification: %w", err)
		}
	}

	outcome := "applied"
	if !result.Applied {
		outcome = "duplicate"
	}
	metrics.Metrics().NotificationInc(string(provider), outcome)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
	return nil
}

// регистрация платежа чекаутом до редиректа на провайдера
func (h *Handlers) RegisterPayment(w http.ResponseWriter, r *http.Request) error {
	payment := models.CreatePayment{}

	if err := render.DecodeJSON(r.Body, &payment); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("неверный формат запроса"))
		return fmt.Errorf("decoding the request body into JSON: %w", err)
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()

	if err := h.service.RegisterPayment(ctx, payment); err != nil {
		switch {
		case errors.Is(err, models.ErrPaymentAlreadyExists):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("платеж уже зарегистрирован"))
		case errors.Is(err, models.ErrPaymentIDMandatory),
			errors.Is(err, models.ErrUserIDMandatory),
			errors.Is(err, models.ErrUnknownProvider),
			errors.Is(err, models.ErrIncorrectPayment):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("неверные параметры платежа"))
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
		}
		return fmt.Errorf("register payment: %w", err)
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK())
	return nil
}

// привязка приглашенного к рефереру, первый реферер побеждает
func (h *Handlers) AttachReferral(w http.ResponseWriter, r *http.Request) error {
	referral := models.Referral{}

	if err := render.DecodeJSON(r.Body, &referral); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("неверный формат запроса"))
		return fmt.Errorf("decoding the request body into JSON: %w", err)
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()

	if err := h.service.AttachReferral(ctx, referral); err != nil {
		switch {
		case errors.Is(err, models.ErrReferralAlreadyExists):
			// повторная привязка не меняет реферера
			render.Status(r, http.StatusOK)
			render.JSON(w, r, response.OK())
			return nil
		case errors.Is(err, models.ErrSelfReferral):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("нельзя пригласить самого себя"))
		case errors.Is(err, models.ErrUserIDMandatory):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("неверные идентификаторы пользователей"))
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
		}
		return fmt.Errorf("attach referral: %w", err)
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK())
	return nil
}

// установка партнерского статуса и индивидуальной ставки
func (h *Handlers) SetReferrerProfile(w http.ResponseWriter, r *http.Request) error {
	profile := models.ReferrerProfile{}

	if err := render.DecodeJSON(r.Body, &profile); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("неверный формат запроса"))
		return fmt.Errorf("decoding the request body into JSON: %w", err)
	}
	profile.UserID = models.UserID(chi.URLParam(r, "userID"))

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()

	if err := h.service.SetReferrerProfile(ctx, profile); err != nil {
		switch {
		case errors.Is(err, models.ErrUserIDMandatory),
			errors.Is(err, models.ErrIncorrectCommissionRate):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("неверные параметры профиля"))
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
		}
		return fmt.Errorf("set referrer profile: %w", err)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OK())
	return nil
}

type fulfillmentRequest struct {
	PaymentID      models.PaymentID `json:"payment_id"`
	FulfillmentRef string           `json:"fulfillment_ref"`
}

// подтверждение фулфилмента: pending-начисление зачисляется на баланс
func (h *Handlers) ConfirmFulfillment(w http.ResponseWriter, r *http.Request) error {
	req := fulfillmentRequest{}

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("неверный формат запроса"))
		return fmt.Errorf("decoding the request body into JSON: %w", err)
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()

	outcome, err := h.service.CreditEarning(ctx, req.PaymentID, req.FulfillmentRef)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEarningAlreadyCancelled):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("начисление уже отменено"))
		case errors.Is(err, models.ErrPaymentIDMandatory):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("неверный идентификатор платежа"))
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
		}
		return fmt.Errorf("confirm fulfillment: %w", err)
	}

	metrics.Metrics().EarningTransitionInc(string(outcome))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"outcome": string(outcome)})
	return nil
}

type refundRequest struct {
	PaymentID models.PaymentID `json:"payment_id"`
	Reason    string           `json:"reason"`
}

// административный возврат платежа
func (h *Handlers) RefundPayment(w http.ResponseWriter, r *http.Request) error {
	req := refundRequest{}

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("неверный формат запроса"))
		return fmt.Errorf("decoding the request body into JSON: %w", err)
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()

	outcome, err := h.service.Refund(ctx, req.PaymentID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEarningAlreadyCredited):
			// в отличие от вебхука оператор должен увидеть конфликт
			metrics.Metrics().CancelConflictInc()
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("начисление уже зачислено, требуется ручная сверка"))
		case errors.Is(err, models.ErrUnknownPayment):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("платеж не найден"))
		case errors.Is(err, models.ErrPaymentIDMandatory):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("неверный идентификатор платежа"))
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
		}
		return fmt.Errorf("refund payment: %w", err)
	}

	metrics.Metrics().EarningTransitionInc(string(outcome))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"outcome": string(outcome)})
	return nil
}

// текущие балансы реферера по валютам
func (h *Handlers) BalanceByUser(w http.ResponseWriter, r *http.Request) error {
	userID, _ := userIDFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()
	balances, err := h.service.UserBalances(ctx, models.UserID(userID))
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
		return fmt.Errorf("user balances: %w", err)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, balances)

	return nil
}

// история начислений реферера
func (h *Handlers) EarningsByUser(w http.ResponseWriter, r *http.Request) error {
	userID, _ := userIDFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()
	earnings, err := h.service.EarningsByReferrer(ctx, models.UserID(userID))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoRecordsFound):
			render.Status(r, http.StatusNoContent)
			render.JSON(w, r, response.OK())
			return nil
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
			return fmt.Errorf("earnings by user: %w", err)
		}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, earnings)
	return nil
}

// заявка на вывод средств
func (h *Handlers) RequestWithdrawal(w http.ResponseWriter, r *http.Request) error {
	userID, _ := userIDFromContext(r.Context())

	request := models.WithdrawalRequest{}

	if err := render.DecodeJSON(r.Body, &request); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("неверный формат запроса"))
		return fmt.Errorf("decode JSON: %w", err)
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()

	receipt, err := h.service.RequestWithdrawal(ctx, models.UserID(userID), request)
	if err != nil {
		fundsErr := &models.InsufficientFundsError{}
		switch {
		case errors.As(err, &fundsErr):
			metrics.Metrics().WithdrawalRejectedInc()
			render.Status(r, http.StatusPaymentRequired)
			render.JSON(w, r, fundsErr)
		case errors.Is(err, models.ErrIncorrectWithdrawal):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("неверные параметры вывода"))
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
		}
		return fmt.Errorf("request withdrawal: %w", err)
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, receipt)
	return nil
}

// отмена еще не обработанной заявки на вывод
func (h *Handlers) CancelWithdrawal(w http.ResponseWriter, r *http.Request) error {
	userID, _ := userIDFromContext(r.Context())

	withdrawalID := models.WithdrawalID(chi.URLParam(r, "withdrawalID"))

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()

	if err := h.service.CancelWithdrawal(ctx, models.UserID(userID), withdrawalID); err != nil {
		switch {
		case errors.Is(err, models.ErrNoRecordsFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("заявка не найдена или уже в обработке"))
		case errors.Is(err, models.ErrWithdrawalIDMandatory):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("неверный идентификатор заявки"))
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
		}
		return fmt.Errorf("cancel withdrawal: %w", err)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OK())
	return nil
}

// история выводов средств
func (h *Handlers) HistoryWithdrawals(w http.ResponseWriter, r *http.Request) error {
	userID, _ := userIDFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()

	withdrawals, err := h.service.WithdrawalsByUser(ctx, models.UserID(userID))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoRecordsFound):
			render.Status(r, http.StatusNoContent)
			render.JSON(w, r, response.Error("нет ни одной заявки на вывод"))
			return nil
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("внутренняя ошибка сервера"))
			return fmt.Errorf("withdrawals: %w", err)
		}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, withdrawals)
	return nil
}

// сервер запустился
func (h *Handlers) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// сервер готов принимать запросы
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*4)
	defer cancel()
	if err := h.pinger.Ping(ctx); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return fmt.Errorf("ping db: %w", err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

// decodeNotification разбирает плоский JSON-payload провайдера.
// Значения приводятся к строкам в том виде, в котором они
// участвуют в канонизации подписи.
func decodeNotification(r *http.Request) (*models.Notification, error) {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	raw := map[string]any{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		case bool:
			fields[key] = fmt.Sprintf("%t", v)
		default:
			return nil, fmt.Errorf("field %q: unsupported value type", key)
		}
	}

	signature, ok := fields["signature"]
	if !ok {
		return nil, errors.New("missing signature field")
	}
	delete(fields, "signature")

	providerRef, ok := fields["provider_ref"]
	if !ok || providerRef == "" {
		return nil, errors.New("missing provider_ref field")
	}

	status, ok := fields["status"]
	if !ok || status == "" {
		return nil, errors.New("missing status field")
	}

	return &models.Notification{
		ProviderRef:    providerRef,
		ReportedStatus: status,
		Signature:      signature,
		Fields:         fields,
	}, nil
}

// userID из токена JWT
func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := jwt.ClaimJWTFromContext[string](ctx, jwt.UserID)
	if !ok {
		return "", false
	}
	return userID, true
}
