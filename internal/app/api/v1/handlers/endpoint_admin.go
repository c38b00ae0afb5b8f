package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/coral-developers/coral-web/internal/app/api/core/request"
	"github.com/coral-developers/coral-web/internal/app/api/core/respond"
	"github.com/coral-developers/coral-web/internal/app/api/v1/models"
	"github.com/coral-developers/coral-web/internal/config"
)

const AdminSecretHeader = "X-Admin-Secret"

type SmtpService interface {
	// VerifySmtp checks the current mail transport configuration against the relay.
	VerifySmtp(ctx context.Context) (*config.TransportConfig, error)
}

type AdminEndpoint struct {
	cfg  *config.Config
	smtp SmtpService
}

func NewAdminEndpoint(cfg *config.Config, smtpService SmtpService) *AdminEndpoint {
	return &AdminEndpoint{
		cfg:  cfg,
		smtp: smtpService,
	}
}

func (e AdminEndpoint) GetName() string {
	return "AdminEndpoint"
}

func (e AdminEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/admin")
	apiGroup.Use(e.requireAdminSecret)

	apiGroup.HandleFunc("GET /test-smtp", e.handleTestSmtpGet())
}

// requireAdminSecret only lets requests pass that carry the configured admin secret.
// If no secret is configured, the admin endpoints are disabled.
func (e AdminEndpoint) requireAdminSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := e.cfg.Web.AdminSecret
		if expected == "" {
			respond.JSON(w, http.StatusServiceUnavailable, models.SmtpTestResponse{
				Message: "Admin endpoint not configured (ADMIN_SECRET missing)",
			})
			return
		}

		provided := request.HeaderRaw(r, AdminSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			slog.Warn("rejected admin request", "path", r.URL.Path, "clientIp", request.ClientIp(r, e.cfg.Web.TrustedProxies...))
			respond.JSON(w, http.StatusUnauthorized, models.SmtpTestResponse{Message: "Unauthorized"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleTestSmtpGet returns a handler function that verifies the SMTP relay configuration.
//
// @ID admin_handleTestSmtpGet
// @Tags Admin
// @Summary Verify the SMTP connection.
// @Description Resolves the current mail configuration and performs a handshake with the relay.
// @Description Credentials are never part of the response.
// @Param X-Admin-Secret header string true "The configured admin secret."
// @Produce json
// @Success 200 {object} models.SmtpTestResponse
// @Failure 401 {object} models.SmtpTestResponse
// @Failure 500 {object} models.SmtpTestResponse
// @Failure 503 {object} models.SmtpTestResponse
// @Router /admin/test-smtp [get]
func (e AdminEndpoint) handleTestSmtpGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc, err := e.smtp.VerifySmtp(r.Context())

		var missingErr *config.MissingConfigError
		switch {
		case errors.As(err, &missingErr):
			respond.JSON(w, http.StatusInternalServerError, models.SmtpTestResponse{
				Message:     "SMTP test failed with error",
				Error:       missingErr.Error(),
				MissingVars: missingErr.MissingVars,
			})
		case err != nil:
			slog.Error("smtp connection test failed", "error", err)
			respond.JSON(w, http.StatusInternalServerError, models.SmtpTestResponse{
				Message: "SMTP connection failed - check your credentials and configuration",
				Config:  models.NewSmtpEndpointConfig(tc),
			})
		default:
			respond.JSON(w, http.StatusOK, models.SmtpTestResponse{
				Success: true,
				Message: "SMTP connection verified successfully",
				Config:  models.NewSmtpConfig(tc),
			})
		}
	}
}
