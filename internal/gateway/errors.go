package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/pkg/jobzone"
)

// classify maps a jobzone client error onto the domain error kinds
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, jobzone.ErrAlreadyApplied) {
		return domain.NewError(domain.ErrAlreadyApplied, "", err)
	}

	var apiErr *jobzone.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized:
			return domain.NewError(domain.ErrInvalidCredentials, msg, err)
		case apiErr.StatusCode == http.StatusNotFound:
			return domain.NewError(domain.ErrNotFound, msg, err)
		case apiErr.StatusCode == http.StatusConflict,
			apiErr.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "already exists"):
			return domain.NewError(domain.ErrConflict, msg, err)
		case apiErr.StatusCode == http.StatusBadRequest:
			// the request went out; ErrValidation is kept for local checks
			return domain.NewError(domain.ErrRejected, msg, err)
		case apiErr.StatusCode == http.StatusRequestTimeout, apiErr.StatusCode == http.StatusGatewayTimeout:
			return domain.NewError(domain.ErrTimeout, "", err)
		default:
			return domain.NewError(domain.ErrServer, "", err)
		}
	}

	if jobzone.IsTimeout(err) {
		return domain.NewError(domain.ErrTimeout, "", err)
	}
	if errors.Is(err, context.Canceled) {
		return domain.NewError(domain.ErrNetwork, "", err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.NewError(domain.ErrNetwork, "", err)
	}

	// undecodable responses and the like
	return domain.NewError(domain.ErrServer, "", err)
}

func isNotFound(err error) bool {
	var apiErr *jobzone.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
