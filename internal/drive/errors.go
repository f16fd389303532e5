package drive

import (
	"context"
	"errors"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/finnvale/drivescout/internal/fault"
)

// mapError classifies a Drive API failure into the fault taxonomy. Every
// remote error funnels through here so nothing reaches the tool layer
// unclassified.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var fe *fault.Error
	if errors.As(err, &fe) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fault.Wrap(fault.KindRemoteTimeout, err, op+" timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fault.Wrap(fault.KindRemoteTimeout, err, op+" timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusNotFound:
			return fault.Wrap(fault.KindNotFound, err, op+": file not found")
		case apiErr.Code == http.StatusTooManyRequests:
			return fault.Wrap(fault.KindRateLimited, err, op+": rate limited")
		case apiErr.Code == http.StatusForbidden:
			if isRateLimitReason(apiErr) {
				return fault.Wrap(fault.KindRateLimited, err, op+": rate limited")
			}
			return fault.Wrap(fault.KindPermissionDenied, err, op+": permission denied")
		case apiErr.Code == http.StatusUnauthorized:
			return fault.Wrap(fault.KindAuthRequired, err, op+": authorization rejected")
		case apiErr.Code >= 500:
			return fault.Wrap(fault.KindRemoteServerError, err, op+": Drive reported a server error")
		}
		return fault.Wrap(fault.KindRemoteServerError, err, op+" failed")
	}

	return fault.Wrap(fault.KindRemoteServerError, err, op+" failed")
}

// isRateLimited reports whether the error is the one retryable condition:
// the provider signaling "too many requests".
func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	return apiErr.Code == http.StatusForbidden && isRateLimitReason(apiErr)
}

// isRateLimitReason checks the 403 error reasons Drive uses for quota
// exhaustion, which share a status code with real permission failures.
func isRateLimitReason(apiErr *googleapi.Error) bool {
	for _, e := range apiErr.Errors {
		switch e.Reason {
		case "rateLimitExceeded", "userRateLimitExceeded":
			return true
		}
	}
	return false
}
