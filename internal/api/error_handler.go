package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the auth error taxonomy and known domain errors to HTTP statuses.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Typed auth failures carry a displayable message.
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		switch ae.Kind {
		case domain.KindValidation:
			return http.StatusBadRequest, ae.DisplayMessage()
		case domain.KindRejected:
			return http.StatusUnauthorized, ae.DisplayMessage()
		case domain.KindNetwork:
			return http.StatusBadGateway, ae.DisplayMessage()
		default:
			return http.StatusBadGateway, ae.DisplayMessage()
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "module access forbidden"
	}

	// Upstream service errors: pass client-attributable statuses through,
	// shield the rest behind a 502.
	if code, ok := backend.StatusCode(err); ok {
		switch code {
		case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
			return code, err.Error()
		default:
			return http.StatusBadGateway, "upstream service error"
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
