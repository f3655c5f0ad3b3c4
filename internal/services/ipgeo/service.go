package ipgeo

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
)

// Name is the service identifier.
const Name = "ipgeo"

// Backend answers a geolocation query for one address.
type Backend interface {
	Locate(ctx context.Context, ip net.IP) (*Result, error)
	// PAP is the activity level of a query against this backend.
	PAP() pap.Level
}

// Service geolocates IP addresses using a Backend.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

// NewService creates an ipgeo service on backend.
func NewService(backend Backend, logger *slog.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return Name }

// PAP returns the backend's activity level: AMBER online, RED offline.
func (s *Service) PAP() pap.Level { return s.backend.PAP() }

// AggregateResults combines results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run geolocates input, which must be an IPv4 or IPv6 address.
func (s *Service) Run(ctx context.Context, input string) (services.Result, error) {
	input = output.StripANSI(input)
	ip := net.ParseIP(input)
	if ip == nil {
		return nil, fmt.Errorf("%w: must be a valid IP address: %q", services.ErrInvalidInput, input)
	}
	if ip.IsPrivate() || ip.IsLoopback() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() {
		return nil, fmt.Errorf("%w: %s is not a public address", services.ErrInvalidInput, input)
	}

	result, err := s.backend.Locate(ctx, ip)
	if err != nil {
		return nil, err
	}
	result.IP = ip.String()
	s.logger.Debug("ip located", "ip", result.IP, "country", result.CountryCode, "source", result.Source)
	return result, nil
}
