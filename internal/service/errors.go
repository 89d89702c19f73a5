package service

import (
	"errors"
	"fmt"
	"net/http"
)

type catalogUnavailableError struct{ reason string }

func (e catalogUnavailableError) Error() string {
	if e.reason == "" {
		return "catalog not loaded"
	}
	return "catalog not loaded: " + e.reason
}

func (e catalogUnavailableError) StatusCode() int { return http.StatusServiceUnavailable }

// IsCatalogUnavailable reports whether err means no snapshot has loaded yet.
func IsCatalogUnavailable(err error) bool {
	var e catalogUnavailableError
	return errors.As(err, &e)
}

type profileNotFoundError struct{ slug string }

func (e profileNotFoundError) Error() string { return fmt.Sprintf("unknown profile: %s", e.slug) }

func (e profileNotFoundError) StatusCode() int { return http.StatusBadRequest }

// IsProfileNotFound reports whether err names an unknown constraint profile.
func IsProfileNotFound(err error) bool {
	var e profileNotFoundError
	return errors.As(err, &e)
}

type invalidRequestError struct{ err error }

func (e invalidRequestError) Error() string { return "invalid request: " + e.err.Error() }

func (e invalidRequestError) Unwrap() error { return e.err }

func (e invalidRequestError) StatusCode() int { return http.StatusBadRequest }

// IsInvalidRequest reports whether err is a request validation failure.
func IsInvalidRequest(err error) bool {
	var e invalidRequestError
	return errors.As(err, &e)
}
