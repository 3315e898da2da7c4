package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/lumipack/billing/internal/domain/models"
	"github.com/lumipack/billing/internal/logger"
	"github.com/lumipack/billing/internal/storage"
)

//go:generate mockery --name Storage
type Storage interface {
	CreatePayment(ctx context.Context, payment storage.CreatePayment) error
	PaymentByProviderRef(ctx context.Context, provider, providerRef string) (*storage.Payment, error)
	PaymentByID(ctx context.Context, paymentID string) (*storage.Payment, error)
	MarkPaymentSucceeded(ctx context.Context, paymentID string) (bool, error)
	SetPaymentStatus(ctx context.Context, paymentID string, status string) error
	CreateReferral(ctx context.Context, referredUserID, referrerID string) error
	ReferrerByReferred(ctx context.Context, referredUserID string) (string, error)
	UpsertReferrerProfile(ctx context.Context, profile storage.ReferrerProfile) error
	ReferrerProfile(ctx context.Context, userID string) (*storage.ReferrerProfile, error)
	CreateEarning(ctx context.Context, earning storage.CreateEarning) (bool, error)
	EarningByPaymentID(ctx context.Context, paymentID string) (*storage.Earning, error)
	CreditEarning(ctx context.Context, paymentID, fulfillmentRef string) (bool, error)
	CancelEarning(ctx context.Context, paymentID, reason string) (bool, error)
	EarningsByReferrer(ctx context.Context, referrerID string) ([]storage.Earning, error)
	UserBalances(ctx context.Context, userID string) ([]storage.Balance, error)
	CreateWithdrawal(ctx context.Context, withdrawal storage.CreateWithdrawal) (float64, error)
	WithdrawalsByUser(ctx context.Context, userID string) ([]storage.Withdrawal, error)
	CancelWithdrawal(ctx context.Context, userID, withdrawalID string) (bool, error)
}

//go:generate mockery --name SignatureVerifier
type SignatureVerifier interface {
	Verify(provider string, fields map[string]string, signature string) bool
}

//go:generate mockery --name RateResolver
type RateResolver interface {
	Rate(profile *models.ReferrerProfile) float64
}

type Option func(*service)

// WithTaxRate - доля НДФЛ, удерживаемая при выводе.
func WithTaxRate(rate float64) Option {
	return func(s *service) {
		s.taxRate = rate
	}
}

// WithMinWithdrawal - минимальный доступный остаток для вывода.
func WithMinWithdrawal(min float64) Option {
	return func(s *service) {
		s.minWithdrawal = min
	}
}

type service struct {
	verifier      SignatureVerifier
	rates         RateResolver
	storage       Storage
	taxRate       float64
	minWithdrawal float64
	log           *slog.Logger
}

func NewService(v SignatureVerifier, r RateResolver, s Storage, opts ...Option) *service {
	srv := &service{
		verifier:      v,
		rates:         r,
		storage:       s,
		taxRate:       0.13,
		minWithdrawal: 5000,
		log:           logger.Logger().With(slog.String("component", "service")),
	}
	for _, fn := range opts {
		fn(srv)
	}
	return srv
}

// Словари статусов провайдеров. Неизвестный статус не ошибка:
// провайдеры добавляют новые значения без предупреждения.
var reportedStatuses = map[string]models.PaymentStatus{
	"succeeded": models.PaymentSucceeded,
	"success":   models.PaymentSucceeded,
	"paid":      models.PaymentSucceeded,
	"confirmed": models.PaymentSucceeded,
	"canceled":  models.PaymentCanceled,
	"cancelled": models.PaymentCanceled,
	"refunded":  models.PaymentRefunded,
	"reversed":  models.PaymentRefunded,
}

func (s *service) RegisterPayment(ctx context.Context, payment models.CreatePayment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	if err := s.storage.CreatePayment(ctx, storage.CreatePayment{
		PaymentID:   string(payment.PaymentID),
		UserID:      string(payment.UserID),
		Provider:    string(payment.Provider),
		ProviderRef: payment.ProviderRef,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
	}); err != nil {
		switch {
		case errors.Is(err, storage.ErrUniqueViolation):
			return fmt.Errorf("create payment %v: %w", err, models.ErrPaymentAlreadyExists)
		default:
			return fmt.Errorf("create payment %v: %w", err, models.ErrInternal)
		}
	}

	return nil
}

// ApplyNotification применяет уведомление провайдера ровно один раз.
// Дубликат - не ошибка: провайдер повторяет доставку до первого 2xx,
// поэтому Applied=false с nil-ошибкой вызывающий обязан трактовать
// как успех.
func (s *service) ApplyNotification(
	ctx context.Context,
	provider models.PaymentProvider,
	notification models.Notification,
) (*models.NotificationResult, error) {
	if !provider.Validate() {
		return nil, models.ErrUnknownProvider
	}

	// Подпись проверяется до любого обращения к данным:
	// неподписанный payload не влияет ни на одну строку.
	if !s.verifier.Verify(string(provider), notification.Fields, notification.Signature) {
		return nil, models.ErrInvalidSignature
	}

	payment, err := s.storage.PaymentByProviderRef(ctx, string(provider), notification.ProviderRef)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoRecordsFound):
			// Платежи создает только чекаут, из уведомлений они не создаются.
			return nil, fmt.Errorf("payment %s: %w", notification.ProviderRef, models.ErrUnknownPayment)
		default:
			return nil, fmt.Errorf("payment by provider ref %v: %w", err, models.ErrInternal)
		}
	}

	previous := models.PaymentStatus(payment.Status)

	mapped, ok := reportedStatuses[notification.ReportedStatus]
	if !ok {
		s.log.Warn("unrecognized provider status, ignoring",
			slog.String("provider", string(provider)),
			slog.String("status", notification.ReportedStatus),
		)
		return &models.NotificationResult{
			Applied:        false,
			PaymentID:      models.PaymentID(payment.PaymentID),
			PreviousStatus: previous,
			NewStatus:      previous,
		}, nil
	}

	result := &models.NotificationResult{
		PaymentID:      models.PaymentID(payment.PaymentID),
		PreviousStatus: previous,
		NewStatus:      mapped,
	}

	switch mapped {
	case models.PaymentSucceeded:
		applied, err := s.storage.MarkPaymentSucceeded(ctx, payment.PaymentID)
		if err != nil {
			return nil, fmt.Errorf("mark succeeded %v: %w", err, models.ErrInternal)
		}
		result.Applied = applied
		if !applied {
			result.NewStatus = previous
			return result, nil
		}

		// Создание начисления сознательно вне транзакции платежа:
		// упавший вызов доберет реконсилиация, сам вызов идемпотентен.
		if outcome, err := s.CreatePendingEarning(ctx, models.PaymentID(payment.PaymentID)); err != nil {
			s.log.Error("create pending earning after succeeded payment",
				slog.String("paymentID", payment.PaymentID),
				logger.Error(err),
			)
		} else {
			s.log.Info("pending earning",
				slog.String("paymentID", payment.PaymentID),
				slog.String("outcome", string(outcome)),
			)
		}
		return result, nil

	case models.PaymentCanceled:
		if err := s.storage.SetPaymentStatus(ctx, payment.PaymentID, string(models.PaymentCanceled)); err != nil {
			return nil, fmt.Errorf("set canceled %v: %w", err, models.ErrInternal)
		}
		result.Applied = previous != models.PaymentCanceled
		return result, nil

	case models.PaymentRefunded:
		if err := s.storage.SetPaymentStatus(ctx, payment.PaymentID, string(models.PaymentRefunded)); err != nil {
			return nil, fmt.Errorf("set refunded %v: %w", err, models.ErrInternal)
		}
		result.Applied = previous != models.PaymentRefunded

		// Уже зачисленное начисление отменить нельзя - конфликт отдадим
		// наверх, провайдеру все равно ответят 200.
		if _, err := s.CancelEarning(ctx, models.PaymentID(payment.PaymentID), "payment refunded"); err != nil {
			return result, fmt.Errorf("cancel earning on refund: %w", err)
		}
		return result, nil
	}

	return result, nil
}

// CreatePendingEarning только фиксирует намерение: баланс не трогается
// до подтверждения фулфилмента.
func (s *service) CreatePendingEarning(ctx context.Context, paymentID models.PaymentID) (models.EarningOutcome, error) {
	if !paymentID.Validate() {
		return "", models.ErrPaymentIDMandatory
	}

	payment, err := s.storage.PaymentByID(ctx, string(paymentID))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoRecordsFound):
			return "", fmt.Errorf("payment %s: %w", paymentID, models.ErrUnknownPayment)
		default:
			return "", fmt.Errorf("payment by id %v: %w", err, models.ErrInternal)
		}
	}

	if models.PaymentProvider(payment.Provider).ExternalCommission() {
		return models.EarningSkippedExternal, nil
	}

	referrerID, err := s.storage.ReferrerByReferred(ctx, payment.UserID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoRecordsFound):
			return models.EarningNoReferrer, nil
		default:
			return "", fmt.Errorf("referrer by referred %v: %w", err, models.ErrInternal)
		}
	}

	profile, err := s.referrerProfile(ctx, referrerID)
	if err != nil {
		return "", err
	}

	rate := s.rates.Rate(profile)

	created, err := s.storage.CreateEarning(ctx, storage.CreateEarning{
		PaymentID:    payment.PaymentID,
		ReferrerID:   referrerID,
		ReferredID:   payment.UserID,
		Amount:       round2(payment.Amount * rate),
		Rate:         rate,
		NativeAmount: payment.Amount,
		Currency:     payment.Currency,
	})
	if err != nil {
		return "", fmt.Errorf("create earning %v: %w", err, models.ErrInternal)
	}

	if !created {
		return models.EarningAlreadyProcessed, nil
	}

	return models.EarningCreatedOutcome, nil
}

// CreditEarning зачисляет pending-начисление на баланс реферера.
// Повторное зачисление - no-op, зачисление после отмены - жесткая ошибка.
func (s *service) CreditEarning(ctx context.Context, paymentID models.PaymentID, fulfillmentRef string) (models.EarningOutcome, error) {
	if !paymentID.Validate() {
		return "", models.ErrPaymentIDMandatory
	}

	flipped, err := s.storage.CreditEarning(ctx, string(paymentID), fulfillmentRef)
	if err != nil {
		return "", fmt.Errorf("credit earning %v: %w", err, models.ErrInternal)
	}
	if flipped {
		return models.EarningCreditedOutcome, nil
	}

	earning, err := s.storage.EarningByPaymentID(ctx, string(paymentID))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoRecordsFound):
			// Платеж без реферера: начисления нет и не будет.
			return models.EarningNoEarningOutcome, nil
		default:
			return "", fmt.Errorf("earning by payment %v: %w", err, models.ErrInternal)
		}
	}

	switch models.EarningStatus(earning.Status) {
	case models.EarningCredited:
		return models.EarningAlreadyCredited, nil
	case models.EarningCancelled:
		return "", fmt.Errorf("payment %s: %w", paymentID, models.ErrEarningAlreadyCancelled)
	}

	return "", fmt.Errorf("earning %s in unexpected status %s: %w", earning.EarningID, earning.Status, models.ErrInternal)
}

// CancelEarning отменяет pending-начисление. Отмена зачисленного
// требует ручной сверки и никогда не проглатывается.
func (s *service) CancelEarning(ctx context.Context, paymentID models.PaymentID, reason string) (models.EarningOutcome, error) {
	if !paymentID.Validate() {
		return "", models.ErrPaymentIDMandatory
	}

	flipped, err := s.storage.CancelEarning(ctx, string(paymentID), reason)
	if err != nil {
		return "", fmt.Errorf("cancel earning %v: %w", err, models.ErrInternal)
	}
	if flipped {
		return models.EarningCancelledOutcome, nil
	}

	earning, err := s.storage.EarningByPaymentID(ctx, string(paymentID))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoRecordsFound):
			return models.EarningNoEarningOutcome, nil
		default:
			return "", fmt.Errorf("earning by payment %v: %w", err, models.ErrInternal)
		}
	}

	switch models.EarningStatus(earning.Status) {
	case models.EarningCancelled:
		return models.EarningAlreadyCancelled, nil
	case models.EarningCredited:
		return "", fmt.Errorf("payment %s: %w", paymentID, models.ErrEarningAlreadyCredited)
	}

	return "", fmt.Errorf("earning %s in unexpected status %s: %w", earning.EarningID, earning.Status, models.ErrInternal)
}

// Refund - административный возврат: платеж помечается refunded,
// незачисленное начисление отменяется.
func (s *service) Refund(ctx context.Context, paymentID models.PaymentID, reason string) (models.EarningOutcome, error) {
	if !paymentID.Validate() {
		return "", models.ErrPaymentIDMandatory
	}

	if _, err := s.storage.PaymentByID(ctx, string(paymentID)); err != nil {
		switch {
		case errors.Is(err, storage.ErrNoRecordsFound):
			return "", fmt.Errorf("payment %s: %w", paymentID, models.ErrUnknownPayment)
		default:
			return "", fmt.Errorf("payment by id %v: %w", err, models.ErrInternal)
		}
	}

	if err := s.storage.SetPaymentStatus(ctx, string(paymentID), string(models.PaymentRefunded)); err != nil {
		return "", fmt.Errorf("set refunded %v: %w", err, models.ErrInternal)
	}

	return s.CancelEarning(ctx, paymentID, reason)
}

// AttachReferral создает ребро "приглашенный -> реферер".
// Первый реферер побеждает, повторное применение - no-op.
func (s *service) AttachReferral(ctx context.Context, referral models.Referral) error {
	if err := referral.Validate(); err != nil {
		return err
	}

	if err := s.storage.CreateReferral(ctx, string(referral.ReferredUserID), string(referral.ReferrerID)); err != nil {
		switch {
		case errors.Is(err, storage.ErrUniqueViolation):
			return fmt.Errorf("referral for %s: %w", referral.ReferredUserID, models.ErrReferralAlreadyExists)
		default:
			return fmt.Errorf("create referral %v: %w", err, models.ErrInternal)
		}
	}

	return nil
}

func (s *service) SetReferrerProfile(ctx context.Context, profile models.ReferrerProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	if err := s.storage.UpsertReferrerProfile(ctx, storage.ReferrerProfile{
		UserID:         string(profile.UserID),
		IsPartner:      profile.IsPartner,
		CommissionRate: profile.CommissionRate,
	}); err != nil {
		return fmt.Errorf("upsert referrer profile %v: %w", err, models.ErrInternal)
	}

	return nil
}

func (s *service) UserBalances(ctx context.Context, userID models.UserID) ([]models.Balance, error) {
	if !userID.Validate() {
		return nil, models.ErrUserIDMandatory
	}

	dbBalances, err := s.storage.UserBalances(ctx, string(userID))
	if err != nil {
		return nil, fmt.Errorf("user balances %v: %w", err, models.ErrInternal)
	}

	balances := make([]models.Balance, 0, len(dbBalances))
	for _, b := range dbBalances {
		balances = append(balances, models.Balance{
			Currency:  b.Currency,
			Available: b.Available,
			Earned:    b.Earned,
			Withdrawn: b.Withdrawn,
		})
	}

	return balances, nil
}

func (s *service) EarningsByReferrer(ctx context.Context, userID models.UserID) ([]models.Earning, error) {
	if !userID.Validate() {
		return nil, models.ErrUserIDMandatory
	}

	dbEarnings, err := s.storage.EarningsByReferrer(ctx, string(userID))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoRecordsFound):
			return nil, models.ErrNoRecordsFound
		default:
			return nil, fmt.Errorf("earnings %v: %w", err, models.ErrInternal)
		}
	}

	earnings := make([]models.Earning, 0, len(dbEarnings))
	for _, e := range dbEarnings {
		earnings = append(earnings, earningToModel(e))
	}

	return earnings, nil
}

// RequestWithdrawal авторизует вывод под блокировкой строки баланса.
// При отказе возвращается точный доступный остаток.
func (s *service) RequestWithdrawal(
	ctx context.Context,
	userID models.UserID,
	request models.WithdrawalRequest,
) (*models.WithdrawalReceipt, error) {
	if !userID.Validate() {
		return nil, models.ErrUserIDMandatory
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	tax := round2(request.Amount * s.taxRate)

	withdrawal := storage.CreateWithdrawal{
		WithdrawalID: uuid.NewString(),
		UserID:       string(userID),
		Currency:     request.Currency,
		Amount:       request.Amount,
		TaxWithheld:  tax,
		NetAmount:    round2(request.Amount - tax),
		PayoutMethod: string(request.PayoutMethod),
		Destination:  request.Destination,
		MinAmount:    s.minWithdrawal,
	}

	available, err := s.storage.CreateWithdrawal(ctx, withdrawal)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInsufficientFunds):
			return nil, &models.InsufficientFundsError{
				Available: available,
				Currency:  request.Currency,
			}
		default:
			return nil, fmt.Errorf("create withdrawal %v: %w", err, models.ErrInternal)
		}
	}

	return &models.WithdrawalReceipt{
		WithdrawalID: models.WithdrawalID(withdrawal.WithdrawalID),
		NetAmount:    withdrawal.NetAmount,
		TaxWithheld:  withdrawal.TaxWithheld,
	}, nil
}

func (s *service) CancelWithdrawal(ctx context.Context, userID models.UserID, withdrawalID models.WithdrawalID) error {
	if !userID.Validate() {
		return models.ErrUserIDMandatory
	}
	if !withdrawalID.Validate() {
		return models.ErrWithdrawalIDMandatory
	}

	cancelled, err := s.storage.CancelWithdrawal(ctx, string(userID), string(withdrawalID))
	if err != nil {
		return fmt.Errorf("cancel withdrawal %v: %w", err, models.ErrInternal)
	}
	if !cancelled {
		// Либо заявка не существует/чужая, либо уже ушла в обработку.
		return models.ErrNoRecordsFound
	}

	return nil
}

func (s *service) WithdrawalsByUser(ctx context.Context, userID models.UserID) ([]models.Withdrawal, error) {
	if !userID.Validate() {
		return nil, models.ErrUserIDMandatory
	}

	dbWithdrawals, err := s.storage.WithdrawalsByUser(ctx, string(userID))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoRecordsFound):
			return nil, models.ErrNoRecordsFound
		default:
			return nil, fmt.Errorf("withdrawals %v: %w", err, models.ErrInternal)
		}
	}

	withdrawals := make([]models.Withdrawal, 0, len(dbWithdrawals))
	for _, w := range dbWithdrawals {
		withdrawals = append(withdrawals, withdrawalToModel(w))
	}

	return withdrawals, nil
}

func (s *service) referrerProfile(ctx context.Context, referrerID string) (*models.ReferrerProfile, error) {
	profile, err := s.storage.ReferrerProfile(ctx, referrerID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoRecordsFound):
			return nil, nil
		default:
			return nil, fmt.Errorf("referrer profile %v: %w", err, models.ErrInternal)
		}
	}

	return &models.ReferrerProfile{
		UserID:         models.UserID(profile.UserID),
		IsPartner:      profile.IsPartner,
		CommissionRate: profile.CommissionRate,
	}, nil
}

func earningToModel(e storage.Earning) models.Earning {
	earning := models.Earning{
		EarningID:    e.EarningID,
		PaymentID:    models.PaymentID(e.PaymentID),
		ReferrerID:   models.UserID(e.ReferrerID),
		ReferredID:   models.UserID(e.ReferredID),
		Amount:       e.Amount,
		Rate:         e.Rate,
		NativeAmount: e.NativeAmount,
		Currency:     e.Currency,
		Status:       models.EarningStatus(e.Status),
		CreatedAt:    e.CreatedAt,
		CreditedAt:   e.CreditedAt,
		CancelledAt:  e.CancelledAt,
	}
	if e.FulfillmentRef != nil {
		earning.FulfillmentRef = *e.FulfillmentRef
	}
	if e.CancelReason != nil {
		earning.CancelReason = *e.CancelReason
	}
	return earning
}

func withdrawalToModel(w storage.Withdrawal) models.Withdrawal {
	withdrawal := models.Withdrawal{
		WithdrawalID: models.WithdrawalID(w.WithdrawalID),
		UserID:       models.UserID(w.UserID),
		Currency:     w.Currency,
		Amount:       w.Amount,
		TaxWithheld:  w.TaxWithheld,
		NetAmount:    w.NetAmount,
		PayoutMethod: models.PayoutMethod(w.PayoutMethod),
		Destination:  w.Destination,
		Status:       models.WithdrawalStatus(w.Status),
		CreatedAt:    w.CreatedAt,
		ProcessedAt:  w.ProcessedAt,
	}
	if w.FailureReason != nil {
		withdrawal.FailureReason = *w.FailureReason
	}
	return withdrawal
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
