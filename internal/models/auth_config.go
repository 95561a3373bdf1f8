package models

// JWTConfig holds token signing configuration
type JWTConfig struct {
	SecretKey          string `yaml:"secret_key" json:"-"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_seconds,omitempty" json:"access_token_expiry_seconds,omitzero"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes,omitempty" json:"refresh_token_expiry_minutes,omitzero"`
	ResetTokenExpiry   int    `yaml:"reset_token_expiry_minutes,omitempty" json:"reset_token_expiry_minutes,omitzero"`
}

// RedisConfig holds the redis connection URL used by the holiday cache and
// the circuit breaker. Empty URL disables both.
type RedisConfig struct {
	URL string `yaml:"url,omitempty" json:"url,omitzero"`
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host     string `yaml:"host,omitempty" json:"host,omitzero"`
	Port     int    `yaml:"port,omitempty" json:"port,omitzero"`
	From     string `yaml:"from,omitempty" json:"from,omitzero"`
	Username string `yaml:"username,omitempty" json:"username,omitzero"`
	Password string `yaml:"password,omitempty" json:"-"`
	TLS      bool   `yaml:"tls,omitempty" json:"tls,omitzero"`
}

// HolidayConfig points at the external public-holiday API
// (Nager.Date-style GET {base_url}/{year}/{country_code}).
type HolidayConfig struct {
	BaseURL     string `yaml:"base_url" json:"base_url"`
	CountryCode string `yaml:"country_code,omitempty" json:"country_code,omitzero"`
}

// FrontendConfig holds links embedded in outbound emails.
type FrontendConfig struct {
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitzero"`
}
