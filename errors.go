package strapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidAddress marks a resource URI that does not match the
	// strapi://content-type/{uid}[/{id}] grammar. Local, no network.
	ErrInvalidAddress = errors.New("invalid resource address")

	// ErrInvalidQuery marks a malformed embedded query string. Local.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidParams marks a missing required tool argument. Local.
	ErrInvalidParams = errors.New("invalid params")

	// ErrBackend covers transport failures and unmapped non-2xx responses.
	ErrBackend = errors.New("strapi unavailable")

	// ErrNotFound surfaces a backend 404.
	ErrNotFound = errors.New("not found")

	// ErrValidation surfaces a backend 4xx on a write.
	ErrValidation = errors.New("validation failed")
)

// apiError carries a non-2xx backend response until a service maps it to
// an error kind.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("strapi returned %d: %s", e.Status, e.Message)
}

// readErr maps a backend failure on a read path: 404 is NotFound,
// everything else is a backend failure.
func readErr(err error) error {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	}
	return fmt.Errorf("%w: %s", ErrBackend, err.Error())
}

// writeErr maps a backend failure on a write path: 404 is NotFound, other
// 4xx is a validation failure, everything else a backend failure.
func writeErr(err error) error {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
		case apiErr.Status >= http.StatusBadRequest && apiErr.Status < http.StatusInternalServerError:
			return fmt.Errorf("%w: %s", ErrValidation, apiErr.Message)
		}
	}
	return fmt.Errorf("%w: %s", ErrBackend, err.Error())
}
