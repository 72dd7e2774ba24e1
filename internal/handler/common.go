// Package handler implements the HTTP handlers for the dashboard API. Each
// handler validates field presence, delegates to a repository and maps the
// outcome to a status code; store errors surface verbatim in the error
// envelope.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database round trip made on behalf of a request.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// field pairs a wire name with whether the request carried it.
type field struct {
	name    string
	present bool
}

// firstMissing returns the name of the first absent field in declaration
// order, or "" when all are present. The scan order is part of the API
// contract: the 400 response names the first missing field.
func firstMissing(fields []field) string {
	for _, f := range fields {
		if !f.present {
			return f.name
		}
	}
	return ""
}

// userIDParam parses the :userId path segment.
func userIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("userId"), 10, 64)
}

// Liveness reports that the API is up. Kept as plain text for parity with the
// dashboard frontend's health probe.
func Liveness(c echo.Context) error {
	return c.String(http.StatusOK, "HealthHub AI Dashboard API is running!")
}
