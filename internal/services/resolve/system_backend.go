package resolve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
)

// SystemBackend uses a net.Resolver-style resolver.
type SystemBackend struct {
	resolver services.DNSResolverInterface
}

// NewSystemBackend returns a Backend on resolver.
func NewSystemBackend(resolver services.DNSResolverInterface) *SystemBackend {
	return &SystemBackend{resolver: resolver}
}

// PAP is GREEN: queries go to the configured recursive resolver.
func (b *SystemBackend) PAP() pap.Level { return pap.GREEN }

// Resolve reports the canonical name and addresses of domain.
// A name that does not exist yields an NXDOMAIN result, not an error.
func (b *SystemBackend) Resolve(ctx context.Context, domain string) (*Result, error) {
	result := &Result{Source: "system"}

	canonical, err := b.resolver.LookupCNAME(ctx, domain)
	if err != nil {
		return b.lookupError(ctx, result, domain, err)
	}
	if canonical != "" && !strings.EqualFold(strings.TrimSuffix(canonical, "."), domain) {
		result.CNAME = []string{output.StripANSI(canonical)}
	}

	addrs, err := b.resolver.LookupIPAddr(ctx, domain)
	if err != nil {
		return b.lookupError(ctx, result, domain, err)
	}
	for _, addr := range addrs {
		clean := output.StripANSI(addr.IP.String())
		if addr.IP.To4() != nil {
			result.A = append(result.A, clean)
		} else {
			result.AAAA = append(result.AAAA, clean)
		}
	}
	return result, nil
}

func (b *SystemBackend) lookupError(ctx context.Context, result *Result, domain string, err error) (*Result, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		result.Rcode = "NXDOMAIN"
		return result, nil
	}
	return nil, fmt.Errorf("%w: resolving %q: %w", services.ErrRequestFailed, domain, err)
}
