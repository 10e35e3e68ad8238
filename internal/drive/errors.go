package drive

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// IsRateLimited reports whether err is the Drive API's request-rate
// ceiling (HTTP 429). Anything else, auth failures and not-found included,
// is never retried.
func IsRateLimited(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests
}
