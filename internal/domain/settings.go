package domain

// Settings is the user-facing preference document. It is replaced wholesale
// on save; unknown fields from older clients survive in Extra.
type Settings struct {
	Theme         string                 `json:"theme"`
	Language      string                 `json:"language"`
	Notifications NotificationSettings   `json:"notifications"`
	RememberEmail string                 `json:"remember_email,omitempty"`
	Extra         map[string]interface{} `json:"extra,omitempty"`
}

// NotificationSettings toggles per-channel notifications
type NotificationSettings struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

// DefaultSettings returns the document used when nothing has been saved yet
func DefaultSettings() *Settings {
	return &Settings{
		Theme:    "dark",
		Language: "en",
		Notifications: NotificationSettings{
			Email: true,
			Push:  true,
		},
	}
}

// Portfolio is the aggregate snapshot document shown on the dashboard
type Portfolio struct {
	TotalValue    float64 `json:"total_value"`
	InvestedValue float64 `json:"invested_value"`
	DayPnL        float64 `json:"day_pnl"`
	TotalPnL      float64 `json:"total_pnl"`
	CashBalance   float64 `json:"cash_balance"`
}

// DefaultPortfolio returns a zeroed portfolio snapshot
func DefaultPortfolio() *Portfolio {
	return &Portfolio{}
}
