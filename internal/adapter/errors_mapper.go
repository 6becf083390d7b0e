package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// classifyError maps a resty transport error (the request never produced a
// response) onto the sentinel taxonomy. Context deadlines, cancellations
// and net errors are all transient: the entry stays queued and is retried
// on the next trigger.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w: %v", op, ErrTransientNetwork, err)
	case errors.As(err, &netErr):
		return fmt.Errorf("%s: %w: %v", op, ErrTransientNetwork, err)
	default:
		// resty wraps url.Error around dial/DNS failures; treat anything
		// without a server response as retryable
		return fmt.Errorf("%s: %w: %v", op, ErrTransientNetwork, err)
	}
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden,
		http.StatusRequestEntityTooLarge, http.StatusInsufficientStorage:
		return fmt.Errorf("%w: http %d: %s", ErrQuotaOrPermission, resp.StatusCode(), body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrObjectNotFound, body)
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return fmt.Errorf("%w: http %d: %s", ErrTransientNetwork, resp.StatusCode(), body)
	default:
		if resp.StatusCode() >= http.StatusInternalServerError {
			return fmt.Errorf("%w: http %d: %s", ErrTransientNetwork, resp.StatusCode(), body)
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
