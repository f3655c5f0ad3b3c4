// Package testutil holds helpers shared by service tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/dossier-cli/dossier/internal/services"
)

// MockResolver is a services.DNSResolverInterface whose methods delegate to
// the optional function fields. Unset fields return zero values.
type MockResolver struct {
	LookupIPAddrFn func(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupCNAMEFn  func(ctx context.Context, host string) (string, error)
}

var _ services.DNSResolverInterface = (*MockResolver)(nil)

func (m *MockResolver) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	if m.LookupIPAddrFn != nil {
		return m.LookupIPAddrFn(ctx, host)
	}
	return nil, nil
}

func (m *MockResolver) LookupCNAME(ctx context.Context, host string) (string, error) {
	if m.LookupCNAMEFn != nil {
		return m.LookupCNAMEFn(ctx, host)
	}
	return host + ".", nil
}

// NopLogger returns a logger that discards everything.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FixedClock returns a clock function that always reports t.
func FixedClock(t string) func() time.Time {
	ts, err := time.Parse("2006-01-02", t)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}
