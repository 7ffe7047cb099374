package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the user directory
type User struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"password_hash"` // API responses use dto.UserOutput, which omits this
	Phone              string    `json:"phone,omitempty"`
	Broker             string    `json:"broker,omitempty"`
	TradingExperience  string    `json:"trading_experience,omitempty"`
	SubscriptionStatus string    `json:"subscription_status"`
	TrialDays          int       `json:"trial_days"`
	IsPremium          bool      `json:"is_premium"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SubscriptionStatus constants
const (
	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// TrialExpired reports whether a trial account has outlived its trial window.
// Active subscriptions never expire here.
func (u *User) TrialExpired(now time.Time) bool {
	if u.SubscriptionStatus != SubscriptionTrial {
		return false
	}
	return now.After(u.CreatedAt.AddDate(0, 0, u.TrialDays))
}

// ProfileUpdate holds the mutable profile fields. Nil pointers leave the
// corresponding field untouched.
type ProfileUpdate struct {
	Name              *string `json:"name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Broker            *string `json:"broker,omitempty"`
	TradingExperience *string `json:"trading_experience,omitempty"`
	Password          *string `json:"password,omitempty"`
}
