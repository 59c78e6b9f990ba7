package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/movieplatform/movie-api/internal/api/handler"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, known := handler.ErrorStatus(err)
		if !known {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		} else if code >= 500 {
			log.Warn().Err(err).Str("path", c.Path()).Msg("request failed")
		}

		if c.Request().Method == "HEAD" {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}
