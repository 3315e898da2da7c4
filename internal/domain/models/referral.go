package models

import "time"

// Referral - постоянное ребро "приглашенный -> реферер".
// Создается не более одного раза на приглашенного, первый реферер побеждает.
type Referral struct {
	ReferredUserID UserID    `json:"referred_user_id"`
	ReferrerID     UserID    `json:"referrer_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r Referral) Validate() error {
	if !r.ReferredUserID.Validate() || !r.ReferrerID.Validate() {
		return ErrUserIDMandatory
	}
	if r.ReferredUserID == r.ReferrerID {
		return ErrSelfReferral
	}
	return nil
}
