package api

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/danielgtaylor/huma/v2"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// toHumaError maps a service error to a problem response. resource names
// the entity ("project") and action the failed verb ("update").
func toHumaError(err error, resource, action string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(capitalize(resource) + " not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return huma.Error400BadRequest(inputMessage(err))
	default:
		logger.Error("Failed to %s %s: %v", action, resource, err)
		return huma.Error500InternalServerError("Failed to " + action + " " + resource)
	}
}

// inputMessage strips the sentinel prefix from a validation error.
func inputMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrInvalidInput.Error()+": "); i >= 0 {
		msg = msg[i+len(domain.ErrInvalidInput.Error())+2:]
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
