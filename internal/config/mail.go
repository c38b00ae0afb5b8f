package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type MailEncryption string

const (
	MailEncryptionNone     MailEncryption = "none"
	MailEncryptionTLS      MailEncryption = "tls"
	MailEncryptionStartTLS MailEncryption = "starttls"
)

type MailAuthType string

const (
	MailAuthPlain   MailAuthType = "plain"
	MailAuthLogin   MailAuthType = "login"
	MailAuthCramMD5 MailAuthType = "crammd5"
)

// MailConfig contains the raw SMTP relay settings as supplied by the operator.
// Values are kept as strings so that an unset value can be told apart from a zero value.
// Use Resolve to obtain a validated TransportConfig.
type MailConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     string `yaml:"port" env:"SMTP_PORT"`
	Secure   string `yaml:"secure" env:"SMTP_SECURE"`
	Username string `yaml:"username" env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`

	FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
	FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`

	// CompanyEmail receives the contact form notifications.
	CompanyEmail string `yaml:"company_email" env:"COMPANY_EMAIL"`
	// AdminEmail optionally receives a blind copy of every notification.
	AdminEmail string `yaml:"admin_email" env:"ADMIN_EMAIL"`

	// Encryption overrides the encryption derived from Secure (tls if secure, starttls otherwise).
	Encryption MailEncryption `yaml:"encryption" env:"SMTP_ENCRYPTION"`
	// CertValidation disables TLS certificate validation if set to false.
	CertValidation bool         `yaml:"cert_validation" env:"SMTP_CERT_VALIDATION"`
	AuthType       MailAuthType `yaml:"auth_type" env:"SMTP_AUTH_TYPE"`

	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"SMTP_CONNECT_TIMEOUT"`
	SendTimeout    time.Duration `yaml:"send_timeout" env:"SMTP_SEND_TIMEOUT"`
}

// TransportConfig is the validated, immutable set of delivery parameters for one send attempt.
type TransportConfig struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string

	FromEmail    string
	FromName     string
	CompanyEmail string
	AdminEmail   string // optional, empty if no blind copy should be sent

	Encryption     MailEncryption
	CertValidation bool
	AuthType       MailAuthType
	ConnectTimeout time.Duration
	SendTimeout    time.Duration
}

// MissingConfigError is returned by MailConfig.Resolve if required values are not set.
type MissingConfigError struct {
	// MissingVars lists all absent configuration names in a stable order.
	MissingVars []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.MissingVars, ", "))
}

// Missing returns the names of all required values that are not set, in a stable order.
func (c MailConfig) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"SMTP_HOST", c.Host},
		{"SMTP_PORT", c.Port},
		{"SMTP_USER", c.Username},
		{"SMTP_PASSWORD", c.Password},
		{"SMTP_FROM_EMAIL", c.FromEmail},
		{"COMPANY_EMAIL", c.CompanyEmail},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// Resolve validates the raw mail settings and returns the transport configuration.
// defaultFromName is used if no sender display name is configured.
// The method never caches, every call reflects the current values.
func (c MailConfig) Resolve(defaultFromName string) (*TransportConfig, error) {
	if missing := c.Missing(); len(missing) > 0 {
		return nil, &MissingConfigError{MissingVars: missing}
	}

	// no range check, the port is operator controlled
	port, _ := strconv.Atoi(strings.TrimSpace(c.Port))

	tc := &TransportConfig{
		Host:           c.Host,
		Port:           port,
		Secure:         c.Secure == "true",
		Username:       c.Username,
		Password:       c.Password,
		FromEmail:      c.FromEmail,
		FromName:       c.FromName,
		CompanyEmail:   c.CompanyEmail,
		AdminEmail:     c.AdminEmail,
		Encryption:     c.Encryption,
		CertValidation: c.CertValidation,
		AuthType:       c.AuthType,
		ConnectTimeout: c.ConnectTimeout,
		SendTimeout:    c.SendTimeout,
	}

	if tc.FromName == "" {
		tc.FromName = defaultFromName
	}
	if tc.Encryption == "" {
		if tc.Secure {
			tc.Encryption = MailEncryptionTLS
		} else {
			tc.Encryption = MailEncryptionStartTLS
		}
	}
	if tc.AuthType == "" {
		tc.AuthType = MailAuthPlain
	}

	return tc, nil
}
