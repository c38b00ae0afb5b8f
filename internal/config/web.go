package config

import (
	"strings"
	"time"
)

// WebConfig contains the configuration for the web server.
type WebConfig struct {
	// RequestLogging enables logging of all HTTP requests.
	RequestLogging bool `yaml:"request_logging" env:"WEB_REQUEST_LOGGING"`
	// ExposeHostInfo sets whether the host information should be exposed in a response header.
	ExposeHostInfo bool `yaml:"expose_host_info" env:"WEB_EXPOSE_HOST_INFO"`
	// ExternalUrl is the URL of the brochure website that embeds the contact form.
	ExternalUrl string `yaml:"external_url" env:"WEB_EXTERNAL_URL"`
	// ListeningAddress is the address and port for the web server.
	ListeningAddress string `yaml:"listening_address" env:"WEB_LISTENING_ADDRESS"`
	// CertFile is the path to the TLS certificate file.
	CertFile string `yaml:"cert_file" env:"WEB_CERT_FILE"`
	// KeyFile is the path to the TLS certificate key file.
	KeyFile string `yaml:"key_file" env:"WEB_KEY_FILE"`

	// AdminSecret protects the SMTP diagnostic endpoint. If empty, the endpoint is disabled.
	AdminSecret string `yaml:"admin_secret" env:"ADMIN_SECRET"`
	// AllowedOrigins is the list of origins that may post the contact form (CORS).
	AllowedOrigins []string `yaml:"allowed_origins" env:"WEB_ALLOWED_ORIGINS"`
	// MaxBodyBytes limits the size of a contact form request body.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"WEB_MAX_BODY_BYTES"`

	// RateLimit is the number of contact submissions per second a single client may send. 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" env:"WEB_RATE_LIMIT"`
	// RateLimitBurst is the number of submissions a client may send at once.
	RateLimitBurst int `yaml:"rate_limit_burst" env:"WEB_RATE_LIMIT_BURST"`
	// RateLimitEvict is the idle time after which a client's limiter is dropped.
	RateLimitEvict time.Duration `yaml:"rate_limit_evict" env:"WEB_RATE_LIMIT_EVICT"`
	// TrustedProxies are proxy addresses whose X-Real-Ip / X-Forwarded-For headers are trusted.
	// The special value PRIVATE trusts all private network addresses.
	TrustedProxies []string `yaml:"trusted_proxies" env:"WEB_TRUSTED_PROXIES"`
}

func (c *WebConfig) Sanitize() {
	c.ExternalUrl = strings.TrimRight(c.ExternalUrl, "/")
}

// CompanyConfig contains the company details that are shown in outgoing emails.
type CompanyConfig struct {
	Name         string `yaml:"name" env:"COMPANY_NAME"`
	Website      string `yaml:"website" env:"COMPANY_WEBSITE"`
	ContactEmail string `yaml:"contact_email" env:"COMPANY_CONTACT_EMAIL"`
	Phone        string `yaml:"phone" env:"COMPANY_PHONE"`
	Address      string `yaml:"address" env:"COMPANY_ADDRESS"`
}
