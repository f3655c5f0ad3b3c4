package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
)

const maxErrorBody = 200

// TransportError wraps a failed request to source. Context cancellation and
// deadline errors are returned unchanged.
func TransportError(source, input string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %s request error for %q: %w", ErrRequestFailed, source, input, err)
}

// StatusError reports a non-2xx response from source with a truncated body.
func StatusError(source, input string, resp *req.Response) error {
	body := resp.String()
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Errorf("%w: %s returned HTTP %d for %q: %q", ErrRequestFailed, source, resp.StatusCode, input, body)
}
