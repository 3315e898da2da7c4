package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumipack/billing/internal/logger"
	"github.com/lumipack/billing/internal/storage"
)

var _ storage.Storage = (*dbStorage)(nil)

// processing-заявка без исхода старше этого срока считается зависшей
// и забирается в работу заново
const defaultProcessingStaleAfter = 10 * time.Minute

type Config struct {
	URI string
	// срок, после которого processing-заявка перезабирается
	ProcessingStaleAfter time.Duration
}

type dbStorage struct {
	pool       *pgxpool.Pool
	log        *slog.Logger
	staleAfter time.Duration
}

func (s *dbStorage) Close() error {
	s.pool.Close()
	return nil
}

func (s *dbStorage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func New(ctx context.Context, cfg Config) (*dbStorage, error) {

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxInterval = 10 * time.Second
	expBackoff.MaxElapsedTime = 20 * time.Second
	expBackoff.InitialInterval = 1 * time.Second
	expBackoff.Multiplier = 1.5

	var (
		pool *pgxpool.Pool
		err  error
	)

	if err := backoff.Retry(func() error {
		if pool, err = pgxpool.New(ctx, cfg.URI); err != nil {
			return err
		}
		if err = pool.Ping(ctx); err != nil {
			return err
		}
		return nil
	}, expBackoff); err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	if err := migrate(ctx, pool); err != nil {
		return nil, err
	}

	staleAfter := cfg.ProcessingStaleAfter
	if staleAfter <= 0 {
		staleAfter = defaultProcessingStaleAfter
	}

	return &dbStorage{
		pool: pool,
		log: logger.Logger().With(
			slog.String("component", "storage"),
		),
		staleAfter: staleAfter,
	}, nil
}

func (s *dbStorage) CreatePayment(ctx context.Context, payment storage.CreatePayment) error {
	query := `
		INSERT INTO
			payments (payment_id, user_id, provider, provider_ref, amount, currency)
		VALUES
			(@paymentID, @userID, @provider, @providerRef, @amount, @currency)`

	args := pgx.NamedArgs{
		"paymentID":   payment.PaymentID,
		"userID":      payment.UserID,
		"provider":    payment.Provider,
		"providerRef": payment.ProviderRef,
		"amount":      payment.Amount,
		"currency":    payment.Currency,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation:
			return fmt.Errorf("payment %s: %w", payment.PaymentID, storage.ErrUniqueViolation)
		default:
			return fmt.Errorf("create payment %v: %w", err, storage.ErrInternal)
		}
	}

	return nil
}

func (s *dbStorage) PaymentByProviderRef(ctx context.Context, provider, providerRef string) (*storage.Payment, error) {
	query := `
		SELECT
			payment_id,
			user_id,
			provider,
			provider_ref,
			amount,
			currency,
			status,
			created_at,
			updated_at
		FROM
			payments
		WHERE
			provider = @provider
			AND provider_ref = @providerRef
		LIMIT 1`

	args := pgx.NamedArgs{
		"provider":    provider,
		"providerRef": providerRef,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query payment %v: %w", err, storage.ErrInternal)
	}

	payment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[storage.Payment])
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, storage.ErrNoRecordsFound
		default:
			return nil, fmt.Errorf("collect one row %v: %w", err, storage.ErrInternal)
		}
	}

	return &payment, nil
}

func (s *dbStorage) PaymentByID(ctx context.Context, paymentID string) (*storage.Payment, error) {
	query := `
		SELECT
			payment_id,
			user_id,
			provider,
			provider_ref,
			amount,
			currency,
			status,
			created_at,
			updated_at
		FROM
			payments
		WHERE
			payment_id = @paymentID
		LIMIT 1`

	args := pgx.NamedArgs{"paymentID": paymentID}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query payment %v: %w", err, storage.ErrInternal)
	}

	payment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[storage.Payment])
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, storage.ErrNoRecordsFound
		default:
			return nil, fmt.Errorf("collect one row %v: %w", err, storage.ErrInternal)
		}
	}

	return &payment, nil
}

// MarkPaymentSucceeded - охраняемый условный апдейт: переход выполняется
// только из pending, повторная доставка уведомления не затрагивает строку.
func (s *dbStorage) MarkPaymentSucceeded(ctx context.Context, paymentID string) (bool, error) {
	query := `
		UPDATE payments
		SET
			status = 'succeeded',
			updated_at = CURRENT_TIMESTAMP
		WHERE
			payment_id = @paymentID
			AND status = 'pending'`

	args := pgx.NamedArgs{"paymentID": paymentID}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("mark payment succeeded %v: %w", err, storage.ErrInternal)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *dbStorage) SetPaymentStatus(ctx context.Context, paymentID string, status string) error {
	query := `
		UPDATE payments
		SET
			status = @status,
			updated_at = CURRENT_TIMESTAMP
		WHERE
			payment_id = @paymentID`

	args := pgx.NamedArgs{
		"paymentID": paymentID,
		"status":    status,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("set payment status %v: %w", err, storage.ErrInternal)
	}

	return nil
}

func (s *dbStorage) CreateReferral(ctx context.Context, referredUserID, referrerID string) error {
	query := `
		INSERT INTO
			referrals (referred_user_id, referrer_id)
		VALUES
			(@referredUserID, @referrerID)`

	args := pgx.NamedArgs{
		"referredUserID": referredUserID,
		"referrerID":     referrerID,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation:
			return fmt.Errorf("referral %s: %w", referredUserID, storage.ErrUniqueViolation)
		default:
			return fmt.Errorf("create referral %v: %w", err, storage.ErrInternal)
		}
	}

	return nil
}

func (s *dbStorage) ReferrerByReferred(ctx context.Context, referredUserID string) (string, error) {
	query := `
		SELECT
			referrer_id
		FROM
			referrals
		WHERE
			referred_user_id = @referredUserID
		LIMIT 1`

	args := pgx.NamedArgs{"referredUserID": referredUserID}

	var referrerID string
	if err := s.pool.QueryRow(ctx, query, args).Scan(&referrerID); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return "", storage.ErrNoRecordsFound
		default:
			return "", fmt.Errorf("query referrer %v: %w", err, storage.ErrInternal)
		}
	}

	return referrerID, nil
}

func (s *dbStorage) UpsertReferrerProfile(ctx context.Context, profile storage.ReferrerProfile) error {
	query := `
		INSERT INTO
			referrer_profiles (user_id, is_partner, commission_rate, updated_at)
		VALUES
			(@userID, @isPartner, @commissionRate, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE
		SET
			is_partner = EXCLUDED.is_partner,
			commission_rate = EXCLUDED.commission_rate,
			updated_at = CURRENT_TIMESTAMP`

	args := pgx.NamedArgs{
		"userID":         profile.UserID,
		"isPartner":      profile.IsPartner,
		"commissionRate": profile.CommissionRate,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("upsert referrer profile %v: %w", err, storage.ErrInternal)
	}

	return nil
}

func (s *dbStorage) ReferrerProfile(ctx context.Context, userID string) (*storage.ReferrerProfile, error) {
	query := `
		SELECT
			user_id,
			is_partner,
			commission_rate
		FROM
			referrer_profiles
		WHERE
			user_id = @userID
		LIMIT 1`

	args := pgx.NamedArgs{"userID": userID}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query referrer profile %v: %w", err, storage.ErrInternal)
	}

	profile, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[storage.ReferrerProfile])
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, storage.ErrNoRecordsFound
		default:
			return nil, fmt.Errorf("collect one row %v: %w", err, storage.ErrInternal)
		}
	}

	return &profile, nil
}

// CreateEarning охраняется уникальностью payment_id: повторный вызов
// для того же платежа не создаст второе начисление.
func (s *dbStorage) CreateEarning(ctx context.Context, earning storage.CreateEarning) (bool, error) {
	query := `
		INSERT INTO
			earnings (payment_id, referrer_id, referred_id, amount, rate, native_amount, currency, status)
		VALUES
			(@paymentID, @referrerID, @referredID, @amount, @rate, @nativeAmount, @currency, 'pending')
		ON CONFLICT (payment_id) DO NOTHING`

	args := pgx.NamedArgs{
		"paymentID":    earning.PaymentID,
		"referrerID":   earning.ReferrerID,
		"referredID":   earning.ReferredID,
		"amount":       earning.Amount,
		"rate":         earning.Rate,
		"nativeAmount": earning.NativeAmount,
		"currency":     earning.Currency,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("create earning %v: %w", err, storage.ErrInternal)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *dbStorage) EarningByPaymentID(ctx context.Context, paymentID string) (*storage.Earning, error) {
	query := `
		SELECT
			earning_id,
			payment_id,
			referrer_id,
			referred_id,
			amount,
			rate,
			native_amount,
			currency,
			status,
			fulfillment_ref,
			cancel_reason,
			created_at,
			credited_at,
			cancelled_at
		FROM
			earnings
		WHERE
			payment_id = @paymentID
		LIMIT 1`

	args := pgx.NamedArgs{"paymentID": paymentID}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query earning %v: %w", err, storage.ErrInternal)
	}

	earning, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[storage.Earning])
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, storage.ErrNoRecordsFound
		default:
			return nil, fmt.Errorf("collect one row %v: %w", err, storage.ErrInternal)
		}
	}

	return &earning, nil
}

// CreditEarning - перевод pending -> credited и зачисление на баланс
// одним стейтментом. Охрана status = 'pending' в CTE защищает от гонки
// с параллельной отменой: проигравшая сторона увидит 0 строк.
func (s *dbStorage) CreditEarning(ctx context.Context, paymentID, fulfillmentRef string) (bool, error) {
	query := `
		WITH flip AS (
			UPDATE earnings
			SET
				status = 'credited',
				credited_at = CURRENT_TIMESTAMP,
				fulfillment_ref = @fulfillmentRef
			WHERE
				payment_id = @paymentID
				AND status = 'pending'
			RETURNING referrer_id, amount, currency
		)
		INSERT INTO
			user_balance (user_id, currency, available, earned, withdrawn)
		SELECT
			referrer_id, currency, amount, amount, 0
		FROM
			flip
		ON CONFLICT (user_id, currency) DO UPDATE
		SET
			available = user_balance.available + EXCLUDED.available,
			earned = user_balance.earned + EXCLUDED.earned`

	args := pgx.NamedArgs{
		"paymentID":      paymentID,
		"fulfillmentRef": fulfillmentRef,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("credit earning %v: %w", err, storage.ErrInternal)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *dbStorage) CancelEarning(ctx context.Context, paymentID, reason string) (bool, error) {
	query := `
		UPDATE earnings
		SET
			status = 'cancelled',
			cancelled_at = CURRENT_TIMESTAMP,
			cancel_reason = @reason
		WHERE
			payment_id = @paymentID
			AND status = 'pending'`

	args := pgx.NamedArgs{
		"paymentID": paymentID,
		"reason":    reason,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("cancel earning %v: %w", err, storage.ErrInternal)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *dbStorage) EarningsByReferrer(ctx context.Context, referrerID string) ([]storage.Earning, error) {
	query := `
		SELECT
			earning_id,
			payment_id,
			referrer_id,
			referred_id,
			amount,
			rate,
			native_amount,
			currency,
			status,
			fulfillment_ref,
			cancel_reason,
			created_at,
			credited_at,
			cancelled_at
		FROM
			earnings
		WHERE
			referrer_id = @referrerID
		ORDER BY
			created_at`

	args := pgx.NamedArgs{"referrerID": referrerID}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query earnings by referrer %s: %w", referrerID, err)
	}

	earnings, err := pgx.CollectRows(rows, pgx.RowToStructByName[storage.Earning])
	if err != nil {
		return nil, fmt.Errorf("collect rows earnings: %w", err)
	}

	if len(earnings) == 0 {
		return nil, storage.ErrNoRecordsFound
	}

	return earnings, nil
}

func (s *dbStorage) UserBalances(ctx context.Context, userID string) ([]storage.Balance, error) {
	query := `
		SELECT
			currency,
			available,
			earned,
			withdrawn
		FROM
			user_balance
		WHERE
			user_id = @userID
		ORDER BY
			currency`

	args := pgx.NamedArgs{"userID": userID}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query user_balance by userID %s: %w", userID, err)
	}

	balances, err := pgx.CollectRows(rows, pgx.RowToStructByName[storage.Balance])
	if err != nil {
		return nil, fmt.Errorf("collect rows user_balance: %w", err)
	}

	return balances, nil
}

// CreateWithdrawal держит блокировку строки баланса до конца транзакции:
// две одновременные заявки одного пользователя сериализуются, и только
// одна пройдет проверку доступного остатка.
func (s *dbStorage) CreateWithdrawal(ctx context.Context, withdrawal storage.CreateWithdrawal) (float64, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.log.Error("transaction create withdrawal rollback", logger.Error(err))
		}
	}()

	queryBalance := `
		SELECT
			available
		FROM
			user_balance
		WHERE
			user_id = @userID
			AND currency = @currency
		FOR UPDATE`

	argsBalance := pgx.NamedArgs{
		"userID":   withdrawal.UserID,
		"currency": withdrawal.Currency,
	}

	var balance float64
	if err := tx.QueryRow(ctx, queryBalance, argsBalance).Scan(&balance); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return 0, storage.ErrInsufficientFunds
		default:
			return 0, fmt.Errorf("lock user_balance %v: %w", err, storage.ErrInternal)
		}
	}

	queryPending := `
		SELECT
			COALESCE(SUM(amount), 0)
		FROM
			withdrawals
		WHERE
			user_id = @userID
			AND currency = @currency
			AND status IN ('pending', 'processing')`

	var pendingTotal float64
	if err := tx.QueryRow(ctx, queryPending, argsBalance).Scan(&pendingTotal); err != nil {
		return 0, fmt.Errorf("sum pending withdrawals %v: %w", err, storage.ErrInternal)
	}

	available := balance - pendingTotal

	if available < withdrawal.MinAmount || withdrawal.Amount > available {
		return available, storage.ErrInsufficientFunds
	}

	queryInsert := `
		INSERT INTO
			withdrawals (withdrawal_id, user_id, currency, amount, tax_withheld, net_amount, payout_method, destination, status)
		VALUES
			(@withdrawalID, @userID, @currency, @amount, @taxWithheld, @netAmount, @payoutMethod, @destination, 'pending')`

	argsInsert := pgx.NamedArgs{
		"withdrawalID": withdrawal.WithdrawalID,
		"userID":       withdrawal.UserID,
		"currency":     withdrawal.Currency,
		"amount":       withdrawal.Amount,
		"taxWithheld":  withdrawal.TaxWithheld,
		"netAmount":    withdrawal.NetAmount,
		"payoutMethod": withdrawal.PayoutMethod,
		"destination":  withdrawal.Destination,
	}

	if _, err := tx.Exec(ctx, queryInsert, argsInsert); err != nil {
		return available, fmt.Errorf("withdrawals insert %v: %w", err, storage.ErrInternal)
	}

	if err := tx.Commit(ctx); err != nil {
		return available, fmt.Errorf("transaction create withdrawal commit: %w", err)
	}

	return available, nil
}

func (s *dbStorage) WithdrawalsByUser(ctx context.Context, userID string) ([]storage.Withdrawal, error) {
	query := `
		SELECT
			withdrawal_id,
			user_id,
			currency,
			amount,
			tax_withheld,
			net_amount,
			payout_method,
			destination,
			status,
			failure_reason,
			created_at,
			processed_at
		FROM
			withdrawals
		WHERE
			user_id = @userID
		ORDER BY
			created_at`

	args := pgx.NamedArgs{"userID": userID}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query withdrawals by userID %s: %w", userID, err)
	}

	withdrawals, err := pgx.CollectRows(rows, pgx.RowToStructByName[storage.Withdrawal])
	if err != nil {
		return nil, fmt.Errorf("collect rows withdrawals: %w", err)
	}

	if len(withdrawals) == 0 {
		return nil, storage.ErrNoRecordsFound
	}

	return withdrawals, nil
}

func (s *dbStorage) CancelWithdrawal(ctx context.Context, userID, withdrawalID string) (bool, error) {
	query := `
		UPDATE withdrawals
		SET
			status = 'cancelled',
			updated_at = CURRENT_TIMESTAMP
		WHERE
			withdrawal_id = @withdrawalID
			AND user_id = @userID
			AND status = 'pending'`

	args := pgx.NamedArgs{
		"withdrawalID": withdrawalID,
		"userID":       userID,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("cancel withdrawal %v: %w", err, storage.ErrInternal)
	}

	return tag.RowsAffected() > 0, nil
}

// ClaimPendingWithdrawals забирает пачку заявок в работу.
// SKIP LOCKED: конкурирующие инстансы пропускают чужие строки,
// а не ждут друг друга.
// Забираются и processing-заявки, зависшие дольше staleAfter
// (инстанс упал между захватом и исходом либо шлюз не ответил):
// шлюз идемпотентен по withdrawal_id, повторная отправка безопасна.
func (s *dbStorage) ClaimPendingWithdrawals(ctx context.Context, limit uint32) ([]storage.Withdrawal, error) {
	if limit == 0 {
		limit = 100
	}

	query := `
		UPDATE withdrawals
		SET
			status = 'processing',
			updated_at = CURRENT_TIMESTAMP
		WHERE
			withdrawal_id IN (
				SELECT
					withdrawal_id
				FROM
					withdrawals
				WHERE
					status = 'pending'
					OR (
						status = 'processing'
						AND updated_at < CURRENT_TIMESTAMP - make_interval(secs => @staleSeconds)
					)
				ORDER BY
					created_at
				LIMIT
					@limit
				FOR UPDATE SKIP LOCKED
			)
		RETURNING
			withdrawal_id,
			user_id,
			currency,
			amount,
			tax_withheld,
			net_amount,
			payout_method,
			destination,
			status,
			failure_reason,
			created_at,
			processed_at`

	args := pgx.NamedArgs{
		"limit":        limit,
		"staleSeconds": s.staleAfter.Seconds(),
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("claim pending withdrawals: %w", err)
	}

	withdrawals, err := pgx.CollectRows(rows, pgx.RowToStructByName[storage.Withdrawal])
	if err != nil {
		return nil, fmt.Errorf("collect rows withdrawals: %w", err)
	}

	if len(withdrawals) == 0 {
		return nil, storage.ErrNoRecordsFound
	}

	return withdrawals, nil
}

// CompleteWithdrawal - единственный путь, увеличивающий withdrawn:
// перевод processing -> completed и списание с баланса в одной транзакции.
func (s *dbStorage) CompleteWithdrawal(ctx context.Context, withdrawalID string) (bool, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.log.Error("transaction complete withdrawal rollback", logger.Error(err))
		}
	}()

	queryFlip := `
		UPDATE withdrawals
		SET
			status = 'completed',
			processed_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE
			withdrawal_id = @withdrawalID
			AND status = 'processing'
		RETURNING user_id, currency, amount`

	argsFlip := pgx.NamedArgs{"withdrawalID": withdrawalID}

	var (
		userID   string
		currency string
		amount   float64
	)
	if err := tx.QueryRow(ctx, queryFlip, argsFlip).Scan(&userID, &currency, &amount); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return false, nil
		default:
			return false, fmt.Errorf("complete withdrawal %v: %w", err, storage.ErrInternal)
		}
	}

	queryBalance := `
		UPDATE user_balance
		SET
			withdrawn = withdrawn + @amount,
			available = available - @amount
		WHERE
			user_id = @userID
			AND currency = @currency`

	argsBalance := pgx.NamedArgs{
		"userID":   userID,
		"currency": currency,
		"amount":   amount,
	}

	if _, err := tx.Exec(ctx, queryBalance, argsBalance); err != nil {
		return false, fmt.Errorf("user_balance update, %v: %w", err, storage.ErrConstraints)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("transaction complete withdrawal commit: %w", err)
	}

	return true, nil
}

func (s *dbStorage) FailWithdrawal(ctx context.Context, withdrawalID, reason string) (bool, error) {
	query := `
		UPDATE withdrawals
		SET
			status = 'failed',
			failure_reason = @reason,
			updated_at = CURRENT_TIMESTAMP
		WHERE
			withdrawal_id = @withdrawalID
			AND status = 'processing'`

	args := pgx.NamedArgs{
		"withdrawalID": withdrawalID,
		"reason":       reason,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("fail withdrawal %v: %w", err, storage.ErrInternal)
	}

	return tag.RowsAffected() > 0, nil
}

// PaymentsMissingEarnings - выборка для сверки: успешные платежи
// приглашенных пользователей, по которым начисление так и не создано.
// Stars исключен - комиссия этого канала ведется внешней программой.
func (s *dbStorage) PaymentsMissingEarnings(ctx context.Context, limit uint32) ([]storage.Payment, error) {
	if limit == 0 {
		limit = 100
	}

	query := `
		SELECT
			p.payment_id,
			p.user_id,
			p.provider,
			p.provider_ref,
			p.amount,
			p.currency,
			p.status,
			p.created_at,
			p.updated_at
		FROM
			payments p
			JOIN referrals r ON r.referred_user_id = p.user_id
			LEFT JOIN earnings e ON e.payment_id = p.payment_id
		WHERE
			p.status = 'succeeded'
			AND p.provider <> 'stars'
			AND e.payment_id IS NULL
		ORDER BY
			p.updated_at
		LIMIT
			@limit`

	args := pgx.NamedArgs{"limit": limit}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query payments missing earnings: %w", err)
	}

	payments, err := pgx.CollectRows(rows, pgx.RowToStructByName[storage.Payment])
	if err != nil {
		return nil, fmt.Errorf("collect rows payments: %w", err)
	}

	if len(payments) == 0 {
		return nil, storage.ErrNoRecordsFound
	}

	return payments, nil
}
