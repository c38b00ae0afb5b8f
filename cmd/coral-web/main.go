package main

import (
	"context"
	"log/slog"
	"syscall"

	evbus "github.com/vardius/message-bus"

	"github.com/coral-developers/coral-web/internal"
	"github.com/coral-developers/coral-web/internal/adapters"
	"github.com/coral-developers/coral-web/internal/app/api/core"
	"github.com/coral-developers/coral-web/internal/app/api/v1/backend"
	"github.com/coral-developers/coral-web/internal/app/api/v1/handlers"
	"github.com/coral-developers/coral-web/internal/app/audit"
	"github.com/coral-developers/coral-web/internal/app/contact"
	"github.com/coral-developers/coral-web/internal/app/mail"
	"github.com/coral-developers/coral-web/internal/common/healthcheck"
	"github.com/coral-developers/coral-web/internal/config"
)

// main starts the contact form API.
func main() {
	ctx := internal.SignalAwareContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.GetConfig()
	internal.AssertNoError(err)
	internal.SetupLogging(cfg.Advanced.LogLevel, cfg.Advanced.LogPretty, cfg.Advanced.LogJson)

	slog.Info("starting contact API", "version", internal.Version)
	cfg.LogStartupValues()

	if missing := cfg.Mail.Missing(); len(missing) > 0 {
		// submissions fail until the configuration is complete, the service still starts
		slog.Warn("mail configuration incomplete", "missing", missing)
	}

	eventBus := evbus.New(cfg.Advanced.EventQueueSize)

	var metrics audit.MetricsRepo
	if cfg.Statistics.CollectSubmissionData {
		metricsServer := adapters.NewMetricsServer(cfg)
		go metricsServer.Run(ctx)
		metrics = metricsServer
	}

	_, err = audit.NewAuditRecorder(cfg, eventBus, metrics)
	internal.AssertNoError(err)

	mailManager, err := mail.NewMailManager(cfg, eventBus, func(tc *config.TransportConfig) mail.Transport {
		return adapters.NewSmtpTransport(tc)
	})
	internal.AssertNoError(err)

	contactService := backend.NewContactService(cfg, contact.NewValidator(), mailManager)

	apiV1 := handlers.NewRestApi(
		handlers.NewContactEndpoint(ctx, cfg, contactService),
		handlers.NewAdminEndpoint(cfg, contactService),
	)

	webSrv, err := core.NewServer(cfg, apiV1)
	internal.AssertNoError(err)

	go webSrv.Run(ctx, cfg.Web.ListeningAddress)

	if cfg.Health.ListeningAddress != "" {
		healthcheck.New(healthcheck.ListenOn(cfg.Health.ListeningAddress)).StartWithContext(ctx)
	}

	// wait until context gets cancelled
	<-ctx.Done()

	slog.Info("stopped contact API")
}
