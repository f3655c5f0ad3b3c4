package resolver

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"

	"golang.org/x/net/proxy"
)

// NewResolver returns the platform resolver unless proxyURL (or ALL_PROXY
// when proxyURL is empty) names a socks5:// or socks5h:// proxy.
func NewResolver(proxyURL string) (*net.Resolver, error) {
	if proxyURL == "" {
		proxyURL = allProxy()
	}
	if proxyURL == "" {
		return &net.Resolver{}, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy URL: %w", err)
	}
	if u.Scheme != "socks5" && u.Scheme != "socks5h" {
		return &net.Resolver{}, nil
	}

	var auth *proxy.Auth
	if u.User != nil {
		pass, _ := u.User.Password()
		auth = &proxy.Auth{User: u.User.Username(), Password: pass}
	}

	dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("creating SOCKS5 dialer for DNS: %w", err)
	}
	ctxDialer, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("SOCKS5 dialer does not support contexts")
	}

	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, address string) (net.Conn, error) {
			return ctxDialer.DialContext(ctx, "tcp", address)
		},
	}, nil
}

func allProxy() string {
	if v := os.Getenv("ALL_PROXY"); v != "" {
		return v
	}
	return os.Getenv("all_proxy")
}
