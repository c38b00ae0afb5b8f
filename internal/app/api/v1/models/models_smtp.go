package models

import (
	"github.com/coral-developers/coral-web/internal/config"
)

// SmtpConfig is the non-secret part of the mail transport configuration.
type SmtpConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	Secure       bool   `json:"secure"`
	FromEmail    string `json:"fromEmail,omitempty"`
	FromName     string `json:"fromName,omitempty"`
	CompanyEmail string `json:"companyEmail,omitempty"`
	AdminEmail   string `json:"adminEmail,omitempty"`
}

// SmtpTestResponse is the response of the SMTP diagnostic endpoint.
type SmtpTestResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Config      *SmtpConfig `json:"config,omitempty"`
	MissingVars []string    `json:"missingVars,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// NewSmtpConfig returns the full non-secret configuration. Credentials are never included.
func NewSmtpConfig(src *config.TransportConfig) *SmtpConfig {
	if src == nil {
		return nil
	}

	return &SmtpConfig{
		Host:         src.Host,
		Port:         src.Port,
		Secure:       src.Secure,
		FromEmail:    src.FromEmail,
		FromName:     src.FromName,
		CompanyEmail: src.CompanyEmail,
		AdminEmail:   src.AdminEmail,
	}
}

// NewSmtpEndpointConfig returns only the relay address, used if verification failed.
func NewSmtpEndpointConfig(src *config.TransportConfig) *SmtpConfig {
	if src == nil {
		return nil
	}

	return &SmtpConfig{
		Host:   src.Host,
		Port:   src.Port,
		Secure: src.Secure,
	}
}
