package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lumipack/billing/internal/clients"
	"github.com/lumipack/billing/internal/domain/models"
	"github.com/lumipack/billing/internal/storage"
)

// locker - блокиратор с ожиданием и уведомлением n-воркеров
type locker struct {
	// чек простоя воркеров
	hasWaiting bool
	// блокировка установки hasWaiting
	waitMutex sync.RWMutex
	// уведомление "необходимо ждать"
	// создается в lock
	waitCh chan struct{}
}

func (l *locker) lock(d time.Duration) {
	l.waitMutex.Lock()
	defer l.waitMutex.Unlock()
	if !l.hasWaiting {
		l.hasWaiting = true
		l.waitCh = make(chan struct{})
		go func() {
			time.Sleep(d)
			close(l.waitCh)
			l.waitMutex.Lock()
			defer l.waitMutex.Unlock()
			l.hasWaiting = false
		}()
	}
}

func (l *locker) wait() {
	l.waitMutex.RLock()
	if l.hasWaiting {
		<-l.waitCh
	}
	l.waitMutex.RUnlock()
}

//go:generate mockery --name Claimer
type Claimer interface {
	ClaimPendingWithdrawals(ctx context.Context, limit uint32) ([]storage.Withdrawal, error)
	CompleteWithdrawal(ctx context.Context, withdrawalID string) (bool, error)
	FailWithdrawal(ctx context.Context, withdrawalID, reason string) (bool, error)
	PaymentsMissingEarnings(ctx context.Context, limit uint32) ([]storage.Payment, error)
}

//go:generate mockery --name Gateway
type Gateway interface {
	Payout(ctx context.Context, order clients.PayoutOrder) (*clients.PayoutResult, time.Duration, error)
}

//go:generate mockery --name Ledger
type Ledger interface {
	CreatePendingEarning(ctx context.Context, paymentID models.PaymentID) (models.EarningOutcome, error)
}

// payoutResult - исход выплаты по одной заявке.
type payoutResult struct {
	withdrawalID string
	failed       bool
	reason       string
}

type reconciler struct {
	// сигнал внешней остановки
	done <-chan struct{}
	// сигнал остановки воркеров
	exit chan struct{}

	// клиент платежного шлюза
	gateway Gateway
	// таймаут одной выплаты в шлюзе
	gatewayTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration

	// читает заявки и применяет исходы
	claimer Claimer
	// досоздает потерянные начисления
	ledger Ledger

	// период опроса очереди заявок
	claimInterval time.Duration
	// период поиска потерянных начислений
	sweepInterval time.Duration

	// лимит чтения 1 пачки заявок
	readingLimit uint32
	// кол-во одновременно работающих воркеров
	numWorkers uint8
	// канал-приемник заявок на выплату
	withdrawalIn chan storage.Withdrawal
	// канал с исходами выплат
	resultOut chan payoutResult

	errCh chan error

	locker *locker
}

func New(g Gateway, c Claimer, l Ledger,
	done <-chan struct{},
	gatewayTimeout time.Duration,
	readTimeout time.Duration,
	writeTimeout time.Duration,
	claimInterval time.Duration,
	sweepInterval time.Duration,
	limit uint32,
	numWorkers uint8,
) *reconciler {
	r := &reconciler{
		gateway:        g,
		gatewayTimeout: gatewayTimeout,
		claimer:        c,
		ledger:         l,
		readTimeout:    readTimeout,
		writeTimeout:   writeTimeout,
		claimInterval:  claimInterval,
		sweepInterval:  sweepInterval,
		done:           done,
		exit:           make(chan struct{}),
		readingLimit:   limit,
		numWorkers:     numWorkers,
		withdrawalIn:   make(chan storage.Withdrawal, limit),
		errCh:          make(chan error),
		locker:         &locker{},
	}

	go r.reader()
	go r.sweeper()

	r.resultOut = r.fanIn(r.fanOut()...)

	go r.applier()

	go func() {
		<-r.done
		// сигнал для мягкой остановки,
		// захваченные заявки доводим до исхода
		close(r.exit)
	}()

	return r
}

func (r *reconciler) addErr(err error) {
	if err != nil {
		go func() {
			r.errCh <- err
		}()
	}
}

func (r *reconciler) Error() <-chan error {
	return r.errCh
}

// payout отправляет одну заявку в шлюз.
// false - исход пока не определен, заявка останется processing
// и будет захвачена заново.
func (r *reconciler) payout(withdrawal storage.Withdrawal) (payoutResult, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.gatewayTimeout)
	defer cancel()

	_, delay, err := r.gateway.Payout(ctx, clients.PayoutOrder{
		WithdrawalID: withdrawal.WithdrawalID,
		Amount:       withdrawal.NetAmount,
		Currency:     withdrawal.Currency,
		Method:       withdrawal.PayoutMethod,
		Destination:  withdrawal.Destination,
	})
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrManyRequests):
			r.locker.lock(delay)
		case errors.Is(err, clients.ErrPayoutRejected):
			return payoutResult{
				withdrawalID: withdrawal.WithdrawalID,
				failed:       true,
				reason:       err.Error(),
			}, true
		default:
			r.addErr(fmt.Errorf("send payout: %w", err))
		}
		return payoutResult{}, false
	}

	return payoutResult{withdrawalID: withdrawal.WithdrawalID}, true
}

// applier применяет исходы выплат к заявкам.
func (r *reconciler) applier() {
	apply := func(result payoutResult) {
		ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
		defer cancel()

		if result.failed {
			if _, err := r.claimer.FailWithdrawal(ctx, result.withdrawalID, result.reason); err != nil {
				r.addErr(fmt.Errorf("fail withdrawal: %w", err))
			}
			return
		}

		if _, err := r.claimer.CompleteWithdrawal(ctx, result.withdrawalID); err != nil {
			r.addErr(fmt.Errorf("complete withdrawal: %w", err))
		}
	}

	for result := range r.resultOut {
		apply(result)
	}

	// r.withdrawalIn уже закрыт, r.resultOut дочитали, значит ошибок больше не будет
	close(r.errCh)
}

// чтение заявок на выплату
func (r *reconciler) reader() {
	wg := sync.WaitGroup{}
	ticker := time.NewTicker(r.claimInterval)

	defer func() {
		// дождаться заявок в отправке
		wg.Wait()
		close(r.withdrawalIn)
	}()
	defer ticker.Stop()

	for {
		select {
		case <-r.exit:
			return
		case _, ok := <-ticker.C:
			if !ok {
				return
			}

			r.locker.wait()

			ctx, cancel := context.WithTimeout(context.Background(), r.readTimeout)
			withdrawals, err := r.claimer.ClaimPendingWithdrawals(ctx, r.readingLimit)
			cancel()
			if err != nil {
				switch {
				case errors.Is(err, storage.ErrNoRecordsFound):
					continue
				default:
					r.addErr(fmt.Errorf("claim pending withdrawals: %w", err))
				}
			}

			// отправить захваченные заявки в приемник
			for _, withdrawal := range withdrawals {
				withdrawal := withdrawal
				wg.Add(1)
				go func() {
					defer wg.Done()
					r.withdrawalIn <- withdrawal
				}()
			}
		}
	}
}

// sweeper досоздает начисления для платежей, успевших стать succeeded
// без начисления (упавший процесс между переходом и созданием).
func (r *reconciler) sweeper() {
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.exit:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.readTimeout)
			payments, err := r.claimer.PaymentsMissingEarnings(ctx, r.readingLimit)
			cancel()
			if err != nil {
				switch {
				case errors.Is(err, storage.ErrNoRecordsFound):
					continue
				default:
					r.addErr(fmt.Errorf("payments missing earnings: %w", err))
					continue
				}
			}

			for _, payment := range payments {
				ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
				_, err := r.ledger.CreatePendingEarning(ctx, models.PaymentID(payment.PaymentID))
				cancel()
				if err != nil {
					r.addErr(fmt.Errorf("recreate earning for payment %s: %w", payment.PaymentID, err))
				}
			}
		}
	}
}

func (r *reconciler) worker() chan payoutResult {
	result := make(chan payoutResult)

	go func() {
		defer close(result)
		for withdrawal := range r.withdrawalIn {
			r.locker.wait()
			res, ok := r.payout(withdrawal)
			if !ok {
				continue
			}
			result <- res
		}
	}()

	return result
}

func (r *reconciler) fanOut() []chan payoutResult {
	channels := make([]chan payoutResult, r.numWorkers)

	for i := uint8(0); i < r.numWorkers; i++ {
		channels[i] = r.worker()
	}

	return channels
}

func (r *reconciler) fanIn(
	results ...chan payoutResult,
) chan payoutResult {
	final := make(chan payoutResult)
	var wg sync.WaitGroup

	for _, ch := range results {
		payouts := ch
		wg.Add(1)
		go func() {
			defer wg.Done()
			for payout := range payouts {
				select {
				case <-r.done:
					return
				case final <- payout:
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(final)
	}()

	return final
}
