package commission

import "github.com/lumipack/billing/internal/domain/models"

const (
	DefaultRegularRate = 0.10
	DefaultPartnerRate = 0.50
)

// Resolver вычисляет ставку комиссии реферера.
// Чистая функция без побочных эффектов: вызывается один раз при создании
// начисления, полученная ставка замораживается на строке earnings и
// последующие изменения профиля на нее не влияют.
type Resolver struct {
	regularRate float64
	partnerRate float64
}

type Option func(*Resolver)

func WithRegularRate(rate float64) Option {
	return func(r *Resolver) {
		r.regularRate = rate
	}
}

func WithPartnerRate(rate float64) Option {
	return func(r *Resolver) {
		r.partnerRate = rate
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{
		regularRate: DefaultRegularRate,
		partnerRate: DefaultPartnerRate,
	}
	for _, fn := range opts {
		fn(r)
	}
	return r
}

// Rate: индивидуальная ставка, если настроена; иначе партнерская
// или обычная по умолчанию.
func (r *Resolver) Rate(profile *models.ReferrerProfile) float64 {
	if profile == nil {
		return r.regularRate
	}
	if profile.CommissionRate != nil {
		return *profile.CommissionRate
	}
	if profile.IsPartner {
		return r.partnerRate
	}
	return r.regularRate
}
