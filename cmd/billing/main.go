package main

import (
	"context"
	"log/slog"

	"github.com/lumipack/billing/internal/app"
	"github.com/lumipack/billing/internal/config"
	"github.com/lumipack/billing/internal/logger"
)

func main() {

	cfg := config.MustLoad()

	logger.ConfigureLoggers(
		logger.WithLevel(logger.LogLevel(cfg.App.LogLevel)),
		logger.WithServiceName("billing"),
	)

	log := logger.Logger().
		With("app", "billing").
		With("component", "main")

	log.Info("starting...")
	log.Debug("debug mode", slog.Any("config", cfg))

	// Основной контекст приложения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.NewApp(
		app.Option{
			HTTP: app.HTTP{
				Host:            cfg.HTTP.Addr,
				ReadTimeout:     cfg.HTTP.ReadTimeout,
				WriteTimeout:    cfg.HTTP.WriteTimeout,
				IdleTimeout:     cfg.HTTP.IdleTimeout,
				ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
			},
			Auth: app.Auth{
				PublicKeyPath: cfg.Auth.PublicKeyPath,
				ServiceToken:  cfg.Auth.ServiceToken,
			},
			Providers: app.Providers{
				BankSecret:  cfg.Providers.BankSecret,
				StarsSecret: cfg.Providers.StarsSecret,
				TONSecret:   cfg.Providers.TONSecret,
			},
			Ledger: app.Ledger{
				RegularRate:   cfg.Ledger.RegularRate,
				PartnerRate:   cfg.Ledger.PartnerRate,
				TaxRate:       cfg.Ledger.TaxRate,
				MinWithdrawal: cfg.Ledger.MinWithdrawal,
			},
			Clients: app.Clients{
				Payout: app.PayoutGateway{
					URI:           cfg.Clients.PayoutGateway.URI,
					RetryCount:    cfg.Clients.PayoutGateway.RetryCount,
					RetryWaitTime: cfg.Clients.PayoutGateway.RetryWaitTime,
					ReadTimeout:   cfg.Clients.PayoutGateway.ReadTimeout,
				},
			},
			Storages: app.Storages{
				Postgres: app.PostgresStorage{
					URI: cfg.Storage.Postgres.URI,
				},
			},
			Workers: app.Workers{
				Reconciler: app.WorkerReconciler{
					ReadTimeout:   cfg.Workers.Reconciler.ReadTimeout,
					WriteTimeout:  cfg.Workers.Reconciler.WriteTimeout,
					ClaimInterval: cfg.Workers.Reconciler.ClaimInterval,
					SweepInterval: cfg.Workers.Reconciler.SweepInterval,
					StaleAfter:    cfg.Workers.Reconciler.StaleAfter,
					ReadLimit:     cfg.Workers.Reconciler.ReadLimit,
					WorkersLimit:  cfg.Workers.Reconciler.WorkersLimit,
				},
			},
		},
	).Run(ctx); err != nil {
		log.Error(err.Error())
	}

}
