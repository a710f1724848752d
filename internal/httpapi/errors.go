package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"userResourceService/internal/failure"
)

// errorHandler renders every error as a failure.Response. Domain failures go
// through failure.Translate; framework errors keep their status code.
func errorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		resp := toResponse(err)
		if resp.Status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("request failed")
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Status)
		} else {
			err = c.JSON(resp.Status, resp)
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}

func toResponse(err error) failure.Response {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return failure.NewResponse(he.Code, fmt.Sprint(he.Message))
	}
	return failure.Translate(err)
}
