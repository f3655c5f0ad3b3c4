package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
)

// Name is the service identifier.
const Name = "resolve"

// maxCNAMEHops bounds how far a CNAME chain is followed.
const maxCNAMEHops = 10

// Backend resolves one domain.
type Backend interface {
	Resolve(ctx context.Context, domain string) (*Result, error)
	PAP() pap.Level
}

// Service resolves domains using a Backend.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

// NewService creates a resolve service on backend.
func NewService(backend Backend, logger *slog.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return Name }

// PAP returns the backend's activity level.
func (s *Service) PAP() pap.Level { return s.backend.PAP() }

// AggregateResults combines results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run resolves domain.
func (s *Service) Run(ctx context.Context, domain string) (services.Result, error) {
	domain = output.StripANSI(domain)
	if !services.IsDomain(domain) {
		return nil, fmt.Errorf("%w: must be a valid domain name: %q", services.ErrInvalidInput, domain)
	}
	result, err := s.backend.Resolve(ctx, domain)
	if err != nil {
		return nil, err
	}
	result.Domain = domain
	s.logger.Debug("resolved", "domain", domain, "a", len(result.A), "aaaa", len(result.AAAA), "cname", len(result.CNAME))
	return result, nil
}
