package dto

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
	Phone             string `json:"phone,omitempty"`
	Broker            string `json:"broker,omitempty"`
	TradingExperience string `json:"trading_experience,omitempty"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents the login/register response
type AuthResponse struct {
	Token string      `json:"token"`
	User  *UserOutput `json:"user"`
}

// UserOutput represents user data in API responses
type UserOutput struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone,omitempty"`
	Broker             string `json:"broker,omitempty"`
	TradingExperience  string `json:"trading_experience,omitempty"`
	SubscriptionStatus string `json:"subscription_status"`
	TrialDays          int    `json:"trial_days"`
	IsPremium          bool   `json:"is_premium"`
	CreatedAt          string `json:"created_at"`
}
