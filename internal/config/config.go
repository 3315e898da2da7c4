package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		LogLevel string `env:"APP_LOG_LEVEL" env-default:"prod" env-description:"local, dev, prod"`
	}
	HTTP struct {
		Addr            string        `env:"RUN_ADDRESS" env-description:"адрес и порт запуска сервиса"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s" env-description:"максимальное время ожидания остановки сервера"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"30s" env-description:"таймаут на чтение"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s" env-description:"таймаут на запись"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"90s" env-description:"таймаут простоя подключения"`
	}
	Auth struct {
		PublicKeyPath string `env:"AUTH_PUBLIC_KEY_PATH" env-description:"путь к публичному ключу RS256"`
		ServiceToken  string `env:"AUTH_SERVICE_TOKEN" env-required:"true" env-description:"токен внутренних сервисов"`
	}
	Providers struct {
		BankSecret  string `env:"PROVIDER_BANK_SECRET" env-required:"true" env-description:"секрет подписи вебхуков банка"`
		StarsSecret string `env:"PROVIDER_STARS_SECRET" env-required:"true" env-description:"секрет подписи вебхуков telegram stars"`
		TONSecret   string `env:"PROVIDER_TON_SECRET" env-required:"true" env-description:"секрет подписи вебхуков ton"`
	}
	Ledger struct {
		RegularRate   float64 `env:"LEDGER_REGULAR_RATE" env-default:"0.10" env-description:"ставка комиссии обычного реферера"`
		PartnerRate   float64 `env:"LEDGER_PARTNER_RATE" env-default:"0.50" env-description:"ставка комиссии партнера"`
		TaxRate       float64 `env:"LEDGER_TAX_RATE" env-default:"0.13" env-description:"доля НДФЛ при выводе"`
		MinWithdrawal float64 `env:"LEDGER_MIN_WITHDRAWAL" env-default:"5000" env-description:"минимальный доступный остаток для вывода"`
	}
	Storage struct {
		Postgres struct {
			URI string `env:"DATABASE_URI" env-description:"адрес подключения к базе данных"`
		}
	}
	Clients struct {
		PayoutGateway struct {
			URI           string        `env:"PAYOUT_GATEWAY_ADDRESS" env-description:"адрес платежного шлюза выплат"`
			RetryCount    int           `env:"PAYOUT_RETRY_COUNT" env-default:"4" env-description:"кол-во повторов"`
			RetryWaitTime time.Duration `env:"PAYOUT_RETRY_WAIT_TIME" env-default:"500ms" env-description:"простой между повторами"`
			ReadTimeout   time.Duration `env:"PAYOUT_READ_TIMEOUT" env-default:"4s" env-description:"таймаут на чтение"`
		}
	}
	Workers struct {
		Reconciler struct {
			ReadTimeout   time.Duration `env:"WORKERS_RECONCILER_READ_TIMEOUT" env-default:"4s" env-description:"таймаут на чтение"`
			WriteTimeout  time.Duration `env:"WORKERS_RECONCILER_WRITE_TIMEOUT" env-default:"4s" env-description:"таймаут на запись"`
			ClaimInterval time.Duration `env:"WORKERS_RECONCILER_CLAIM_INTERVAL" env-default:"5s" env-description:"период опроса очереди выплат"`
			SweepInterval time.Duration `env:"WORKERS_RECONCILER_SWEEP_INTERVAL" env-default:"1m" env-description:"период поиска потерянных начислений"`
			StaleAfter    time.Duration `env:"WORKERS_RECONCILER_STALE_AFTER" env-default:"10m" env-description:"срок, после которого processing-заявка перезабирается"`
			ReadLimit     uint32        `env:"WORKERS_RECONCILER_READ_LIMIT" env-default:"10" env-description:"лимит чтения одной пачки"`
			WorkersLimit  uint8         `env:"WORKERS_RECONCILER_WORKERS_LIMIT" env-default:"3" env-description:"количество одновременно работающих воркеров"`
		}
	}
}

// Load загружает конфиг
// вернет ошибку, если не существует обязательная env переменная
func Load() (*Config, error) {
	cfg := Config{}
	if err := parseFlags(&cfg); err != nil {
		return nil, err
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func parseFlags(cfg *Config) error {
	flagSet := flag.NewFlagSet("lumipack billing", flag.ContinueOnError)

	flagSet.StringVar(
		&cfg.HTTP.Addr,
		"a",
		":3030",
		"адрес и порт запуска сервиса",
	)

	flagSet.StringVar(
		&cfg.Storage.Postgres.URI,
		"d",
		"",
		"адрес подключения к базе данных",
	)

	flagSet.StringVar(
		&cfg.Clients.PayoutGateway.URI,
		"p",
		"",
		"адрес платежного шлюза выплат",
	)

	flagSet.Usage = cleanenv.FUsage(flagSet.Output(), cfg, nil, flagSet.Usage)

	return flagSet.Parse(os.Args[1:])
}
