package query

import (
	"errors"
	"fmt"
	"net/http"
)

type variantNotFoundError struct{ id string }

func (e variantNotFoundError) Error() string { return fmt.Sprintf("variant not found: %s", e.id) }

func (e variantNotFoundError) StatusCode() int { return http.StatusNotFound }

// ErrVariantNotFound builds the error returned by Detail for an unknown id.
func ErrVariantNotFound(id string) error { return variantNotFoundError{id: id} }

// IsVariantNotFound reports whether err (or any wrapped error) is a missing-variant error.
func IsVariantNotFound(err error) bool {
	var e variantNotFoundError
	return errors.As(err, &e)
}
