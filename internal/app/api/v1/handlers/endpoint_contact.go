package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/coral-developers/coral-web/internal/app/api/core"
	"github.com/coral-developers/coral-web/internal/app/api/core/middleware/ratelimit"
	"github.com/coral-developers/coral-web/internal/app/api/core/request"
	"github.com/coral-developers/coral-web/internal/app/api/core/respond"
	"github.com/coral-developers/coral-web/internal/app/api/v1/models"
	"github.com/coral-developers/coral-web/internal/config"
	"github.com/coral-developers/coral-web/internal/domain"
)

const (
	submitSuccessMessage = "Thank you for your message! We will get back to you soon."
	sendFailedMessage    = "Failed to send your message. Please try again later."
	invalidJsonMessage   = "Invalid JSON in request body"
	tooLargeMessage      = "Request body too large"
	rateLimitedMessage   = "Too many requests. Please try again later."
)

type ContactService interface {
	// Submit validates the raw form input and dispatches both emails.
	Submit(ctx context.Context, input any) (domain.SubmissionResult, error)
}

type ContactEndpoint struct {
	cfg      *config.Config
	contacts ContactService
	limiter  *ratelimit.Middleware
}

// NewContactEndpoint creates the contact form endpoint. The per-client rate limiter lives until ctx is cancelled.
func NewContactEndpoint(ctx context.Context, cfg *config.Config, contactService ContactService) *ContactEndpoint {
	return &ContactEndpoint{
		cfg:      cfg,
		contacts: contactService,
		limiter: ratelimit.New(ctx,
			ratelimit.WithLimit(cfg.Web.RateLimit, cfg.Web.RateLimitBurst),
			ratelimit.WithEvictAfter(cfg.Web.RateLimitEvict),
			ratelimit.WithKeyFunc(func(r *http.Request) string {
				return request.ClientIp(r, cfg.Web.TrustedProxies...)
			}),
			ratelimit.WithLimitedHandler(func(w http.ResponseWriter, _ *http.Request) {
				respond.JSON(w, http.StatusTooManyRequests, models.NewErrorResponse(rateLimitedMessage))
			}),
		),
	}
}

func (e ContactEndpoint) GetName() string {
	return "ContactEndpoint"
}

func (e ContactEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.With(e.limiter.Handler)

	apiGroup.HandleFunc("POST /contact", e.handleContactPost())
}

// handleContactPost returns a handler function that processes a contact form submission.
//
// @ID contact_handleContactPost
// @Tags Contact
// @Summary Submit the contact form.
// @Description The company receives a notification and the submitter an auto-reply.
// @Description The request only fails if the company notification could not be sent.
// @Param request body models.ContactRequest true "The contact form data."
// @Accept json
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 413 {object} models.Response
// @Failure 429 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /contact [post]
func (e ContactEndpoint) handleContactPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if e.contacts == nil {
			respond.JSON(w, http.StatusInternalServerError, models.NewErrorResponse(core.GenericErrorMessage))
			return
		}

		if e.cfg.Web.MaxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, e.cfg.Web.MaxBodyBytes)
		}

		var payload any
		if err := request.BodyJson(r, &payload); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				respond.JSON(w, http.StatusRequestEntityTooLarge, models.NewErrorResponse(tooLargeMessage))
				return
			}
			respond.JSON(w, http.StatusBadRequest, models.NewErrorResponse(invalidJsonMessage))
			return
		}

		if _, err := e.contacts.Submit(r.Context(), payload); err != nil {
			status, model := ParseServiceError(err)
			respond.JSON(w, status, model)
			return
		}

		respond.JSON(w, http.StatusOK, models.NewSuccessResponse(submitSuccessMessage))
	}
}
