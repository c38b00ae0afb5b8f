package handlers

import (
	"errors"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/coral-developers/coral-web/internal/app/api/core"
	"github.com/coral-developers/coral-web/internal/app/api/v1/models"
	"github.com/coral-developers/coral-web/internal/domain"
)

type Handler interface {
	// GetName returns the name of the handler.
	GetName() string
	// RegisterRoutes registers the routes for the handler.
	RegisterRoutes(g *routegroup.Bundle)
}

// To compile the API documentation, run swag on this package.

// @title Coral Contact API
// @version 1.0
// @description The Coral contact API accepts contact form submissions from the brochure website
// @description and forwards them to the company mailbox. Every submitter receives an auto-reply.

// @contact.name Coral Property Developers
// @contact.url https://coral.lk

// @BasePath /api/v1

func NewRestApi(handlers ...Handler) core.ApiEndpointSetupFunc {
	return func() (core.ApiVersion, core.GroupSetupFn) {
		return "v1", func(group *routegroup.Bundle) {
			// Handler functions
			for _, h := range handlers {
				h.RegisterRoutes(group)
			}
		}
	}
}

// ParseServiceError maps a contact service error to a status code and a public response.
// Transport details are never exposed, they are logged by the service.
func ParseServiceError(err error) (int, models.Response) {
	if err == nil {
		return http.StatusInternalServerError, models.NewErrorResponse(core.GenericErrorMessage)
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, models.NewValidationErrorResponse(validationErr.Errors)
	case errors.Is(err, domain.ErrSendFailed),
		errors.Is(err, domain.ErrVerifyFailed),
		errors.Is(err, domain.ErrRenderFailed):
		return http.StatusInternalServerError, models.NewErrorResponse(sendFailedMessage)
	default:
		return http.StatusInternalServerError, models.NewErrorResponse(core.GenericErrorMessage)
	}
}
