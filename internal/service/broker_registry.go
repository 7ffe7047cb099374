package service

import "veloxtrade/internal/domain"

// brokerRegistry lists the brokers the gateway knows how to talk to.
// Order matters: it is the order brokers are shown in.
var brokerRegistry = []domain.BrokerConfig{
	{ID: "zerodha", Name: "Zerodha Kite", CredentialFields: []string{"api_key", "api_secret"}},
	{ID: "upstox", Name: "Upstox", CredentialFields: []string{"api_key", "api_secret"}},
	{ID: "angelone", Name: "Angel One", CredentialFields: []string{"api_key", "client_id", "totp"}},
	{ID: "groww", Name: "Groww", CredentialFields: []string{"api_key", "api_secret"}},
	{ID: "fyers", Name: "Fyers", CredentialFields: []string{"api_key", "api_secret"}},
	{ID: "dhan", Name: "Dhan", CredentialFields: []string{"client_id", "api_key"}},
}

// SupportedBrokers returns the broker registry
func SupportedBrokers() []domain.BrokerConfig {
	out := make([]domain.BrokerConfig, len(brokerRegistry))
	copy(out, brokerRegistry)
	return out
}

// LookupBroker returns the config for a broker ID, or ErrBrokerNotFound
func LookupBroker(brokerID string) (*domain.BrokerConfig, error) {
	for i := range brokerRegistry {
		if brokerRegistry[i].ID == brokerID {
			cfg := brokerRegistry[i]
			return &cfg, nil
		}
	}
	return nil, domain.ErrBrokerNotFound
}
