package router

import (
	"crypto/rsa"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lumipack/billing/internal/api/handlers"
	mw "github.com/lumipack/billing/internal/api/middleware"
	"github.com/lumipack/billing/internal/logger"
	"github.com/lumipack/billing/internal/metrics"
)

// NewRouter конфигурирует главный роутер
func NewRouter(h *handlers.Handlers, publicKey *rsa.PublicKey, serviceToken string) *chi.Mux {
	log := logger.HTTPLogger()

	auth := jwtauth.New(jwa.RS256.String(), publicKey, nil)

	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(
			mw.Recoverer,
			middleware.RequestID,
			middleware.RealIP,
			httplog.RequestLogger(log),
			mw.RequestIncMetrics,
		)

		// уведомления провайдеров, аутентификация - подпись payload
		r.Method(http.MethodPost, "/api/v1/webhooks/{provider}", handlers.Handler(h.ProviderWebhook))

		// внутренний контур, доступен только своим сервисам
		r.Group(func(r chi.Router) {
			r.Use(mw.ServiceToken(serviceToken))

			// регистрация платежа чекаутом
			r.Method(http.MethodPost, "/api/v1/internal/payments", handlers.Handler(h.RegisterPayment))

			// привязка приглашенного к рефереру
			r.Method(http.MethodPost, "/api/v1/internal/referrals", handlers.Handler(h.AttachReferral))

			// партнерский статус и индивидуальная ставка
			r.Method(http.MethodPut, "/api/v1/internal/partners/{userID}", handlers.Handler(h.SetReferrerProfile))

			// подтверждение фулфилмента, зачисление начисления
			r.Method(http.MethodPost, "/api/v1/internal/fulfillments", handlers.Handler(h.ConfirmFulfillment))

			// административный возврат платежа
			r.Method(http.MethodPost, "/api/v1/internal/refunds", handlers.Handler(h.RefundPayment))
		})

		r.Group(func(r chi.Router) {
			r.Use(
				middleware.Compress(5),
				jwtauth.Verifier(auth),
				jwtauth.Authenticator(auth),
			)

			// текущие балансы реферера по валютам
			r.Method(http.MethodGet, "/api/v1/user/balance", handlers.Handler(h.BalanceByUser))

			// история начислений реферера
			r.Method(http.MethodGet, "/api/v1/user/earnings", handlers.Handler(h.EarningsByUser))

			// заявка на вывод средств
			r.Method(http.MethodPost, "/api/v1/user/withdrawals", handlers.Handler(h.RequestWithdrawal))

			// отмена еще не обработанной заявки
			r.Method(http.MethodDelete, "/api/v1/user/withdrawals/{withdrawalID}", handlers.Handler(h.CancelWithdrawal))

			// история выводов средств
			r.Method(http.MethodGet, "/api/v1/user/withdrawals", handlers.Handler(h.HistoryWithdrawals))
		})

		// готов принимать запросы
		r.Method(http.MethodGet, "/ready", handlers.Handler(h.Ready))
	})

	// запустился
	router.Get("/live", h.Live)

	router.Method(http.MethodGet, "/metrics", metrics.Metrics().Handler())

	return router
}
