package app

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumipack/billing/internal/api/handlers"
	httpserver "github.com/lumipack/billing/internal/api/http-server"
	"github.com/lumipack/billing/internal/api/router"
	payoutgateway "github.com/lumipack/billing/internal/clients/payout-gateway"
	"github.com/lumipack/billing/internal/domain/models"
	"github.com/lumipack/billing/internal/logger"
	"github.com/lumipack/billing/internal/service"
	"github.com/lumipack/billing/internal/service/commission"
	"github.com/lumipack/billing/internal/service/reconciler"
	"github.com/lumipack/billing/internal/service/signature"
	"github.com/lumipack/billing/internal/storage/postgres"

	"golang.org/x/sync/errgroup"
)

type HTTP struct {
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type Auth struct {
	PublicKeyPath string
	ServiceToken  string
}

type Providers struct {
	BankSecret  string
	StarsSecret string
	TONSecret   string
}

type Ledger struct {
	RegularRate   float64
	PartnerRate   float64
	TaxRate       float64
	MinWithdrawal float64
}

type PayoutGateway struct {
	URI           string
	RetryCount    int
	RetryWaitTime time.Duration
	ReadTimeout   time.Duration
}

type Clients struct {
	Payout PayoutGateway
}

type WorkerReconciler struct {
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	ClaimInterval time.Duration
	SweepInterval time.Duration
	StaleAfter    time.Duration
	ReadLimit     uint32
	WorkersLimit  uint8
}

type Workers struct {
	Reconciler WorkerReconciler
}

type PostgresStorage struct {
	URI string
}

type Storages struct {
	Postgres PostgresStorage
}

type Option struct {
	HTTP      HTTP
	Auth      Auth
	Providers Providers
	Ledger    Ledger
	Clients   Clients
	Storages  Storages
	Workers   Workers
}

type App struct {
	closers []io.Closer
	opt     Option
}

func NewApp(opt Option) *App {
	return &App{
		closers: make([]io.Closer, 0, 1),
		opt:     opt,
	}
}

func (a *App) Run(ctx context.Context) error {
	log := logger.Logger().With(slog.String("component", "app"))

	// Контекст прослушивающий сигналы прерывания
	sigCtx, sigCancel := signal.NotifyContext(ctx,
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGHUP,
	)
	defer sigCancel()

	storage, err := postgres.New(ctx, postgres.Config{
		URI:                  a.opt.Storages.Postgres.URI,
		ProcessingStaleAfter: a.opt.Workers.Reconciler.StaleAfter,
	})
	if err != nil {
		return err
	}

	a.closers = append(a.closers, storage)

	// Токены выпускает сервис идентификации, здесь только проверка
	publicKey, err := loadPublicKey(a.opt.Auth.PublicKeyPath)
	if err != nil {
		return fmt.Errorf("load RSA public key: %w", err)
	}

	gateway := payoutgateway.New(
		a.opt.Clients.Payout.URI,
		payoutgateway.WithRetry(
			a.opt.Clients.Payout.RetryCount,
			a.opt.Clients.Payout.RetryWaitTime,
		),
	)

	verifier := signature.New(map[string]string{
		string(models.ProviderBank):  a.opt.Providers.BankSecret,
		string(models.ProviderStars): a.opt.Providers.StarsSecret,
		string(models.ProviderTON):   a.opt.Providers.TONSecret,
	})

	resolver := commission.New(
		commission.WithRegularRate(a.opt.Ledger.RegularRate),
		commission.WithPartnerRate(a.opt.Ledger.PartnerRate),
	)

	svc := service.NewService(
		verifier,
		resolver,
		storage,
		service.WithTaxRate(a.opt.Ledger.TaxRate),
		service.WithMinWithdrawal(a.opt.Ledger.MinWithdrawal),
	)

	worker := reconciler.New(
		gateway,
		storage,
		svc,
		ctx.Done(),
		a.opt.Clients.Payout.ReadTimeout,
		a.opt.Workers.Reconciler.ReadTimeout,
		a.opt.Workers.Reconciler.WriteTimeout,
		a.opt.Workers.Reconciler.ClaimInterval,
		a.opt.Workers.Reconciler.SweepInterval,
		a.opt.Workers.Reconciler.ReadLimit,
		a.opt.Workers.Reconciler.WorkersLimit,
	)

	go func() {
		for {
			select {
			case err := <-worker.Error():
				log.Error("reconciler returned an error", logger.Error(err))
			case <-ctx.Done():
				return
			}
		}
	}()

	srv := &http.Server{
		Addr: a.opt.HTTP.Host,
		Handler: router.NewRouter(
			handlers.NewHandlers(svc, storage),
			publicKey,
			a.opt.Auth.ServiceToken,
		),
		ReadTimeout:  a.opt.HTTP.ReadTimeout,
		WriteTimeout: a.opt.HTTP.WriteTimeout,
		IdleTimeout:  a.opt.HTTP.IdleTimeout,
	}

	httpServer := httpserver.NewHTTPServer(srv)

	// Группа для запуска и остановки сервера по сигналу
	errGr, errGrCtx := errgroup.WithContext(sigCtx)

	errGr.Go(func() error {
		return httpServer.Run()
	})

	errGr.Go(func() error {
		defer func() {
			for _, closer := range a.closers {
				if err := closer.Close(); err != nil {
					logger.Logger().Error(
						"close connection",
						logger.Error(err),
					)
				}
			}
		}()
		<-errGrCtx.Done()

		ctx, cancel := context.WithTimeout(
			context.Background(),
			a.opt.HTTP.ShutdownTimeout,
		)
		defer cancel()

		return httpServer.Stop(ctx)
	})

	return errGr.Wait()

}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	publicKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}

	return publicKey, nil
}
