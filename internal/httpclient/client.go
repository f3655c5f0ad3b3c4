// Package httpclient builds the shared req client used by every online
// lookup service.
package httpclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/imroc/req/v3"

	"github.com/dossier-cli/dossier/internal/version"
)

// DefaultTimeout bounds a single upstream request including retries.
const DefaultTimeout = 15 * time.Second

// maxLoggedBody caps the error body written to the debug log.
const maxLoggedBody = 512

// DefaultUserAgent is sent when no User-Agent is configured.
var DefaultUserAgent = "dossier/" + version.Version

var proxyEnv = []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy", "ALL_PROXY", "all_proxy"}

// ResolveProxy reports the proxy that will be used, for config show.
// An unset proxy falls back to the environment, reported as "<from environment>".
func ResolveProxy(proxy string) string {
	if proxy != "" {
		return proxy
	}
	for _, env := range proxyEnv {
		if os.Getenv(env) != "" {
			return "<from environment>"
		}
	}
	return ""
}

// ResolveUserAgent returns userAgent or DefaultUserAgent when it is empty.
func ResolveUserAgent(userAgent string) string {
	if userAgent == "" {
		return DefaultUserAgent
	}
	return userAgent
}

// New returns a client with the given proxy and User-Agent.
// An empty proxy honours the standard proxy environment variables.
// With debug set and a non-nil logger every response is logged at DEBUG.
func New(proxy, userAgent string, logger *slog.Logger, debug bool) (*req.Client, error) {
	client := req.NewClient().
		SetTimeout(DefaultTimeout).
		SetUserAgent(ResolveUserAgent(userAgent)).
		SetCommonHeader("Accept", "application/json")

	if proxy != "" {
		if err := validateProxy(proxy); err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", proxy, err)
		}
		client.SetProxyURL(proxy)
	} else {
		client.SetProxy(http.ProxyFromEnvironment)
	}

	if debug && logger != nil {
		attachDebugHook(client, logger)
	}
	return client, nil
}

func attachDebugHook(client *req.Client, logger *slog.Logger) {
	client.OnAfterResponse(func(_ *req.Client, resp *req.Response) error {
		if resp.Request == nil || resp.Request.RawRequest == nil {
			return nil
		}
		raw := resp.Request.RawRequest
		attrs := []any{"method", raw.Method, "url", raw.URL.String(), "status", resp.StatusCode}
		if !resp.IsSuccessState() {
			body := resp.String()
			if len(body) > maxLoggedBody {
				body = body[:maxLoggedBody]
			}
			attrs = append(attrs, "body", body)
		}
		logger.Debug("http response", attrs...)
		return nil
	})
}

func validateProxy(proxy string) error {
	u, err := url.Parse(proxy)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return fmt.Errorf("proxy scheme must be http://, https://, or socks5://")
	}
	if u.Host == "" {
		return fmt.Errorf("proxy URL has no host")
	}
	return nil
}
