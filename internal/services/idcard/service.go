// Package idcard exposes the offline identity-number parser as a service.
package idcard

import (
	"context"
	"log/slog"
	"strings"
	"time"

	idnum "github.com/dossier-cli/dossier/internal/idcard"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
)

const (
	// Name is the service identifier.
	Name = "idcard"
	// PAP is RED: parsing never leaves the machine.
	PAP = pap.RED
)

// Service validates identity numbers and derives their demographic fields.
type Service struct {
	extractor *idnum.Extractor
	clock     func() time.Time
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the source of the reference instant used for age.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithRegistry replaces the embedded province table.
func WithRegistry(r *idnum.Registry) Option {
	return func(s *Service) { s.extractor = idnum.NewExtractor(r) }
}

// NewService returns a Service using the embedded province table and the wall clock.
func NewService(logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		extractor: idnum.NewExtractor(nil),
		clock:     time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the service identifier.
func (s *Service) Name() string { return Name }

// PAP returns the PAP activity level.
func (s *Service) PAP() pap.Level { return PAP }

// AggregateResults combines results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run parses input relative to the service clock.
func (s *Service) Run(ctx context.Context, input string) (services.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Lookup(input, s.clock())
}

// Lookup parses input relative to now. A rejected identifier returns the
// matching idcard sentinel error and no result.
func (s *Service) Lookup(input string, now time.Time) (*Result, error) {
	raw := strings.TrimSpace(input)
	verdict := idnum.Validate(raw)
	if !verdict.Valid() {
		s.logger.Debug("identity number rejected", "reason", verdict.Reason().String())
		return nil, verdict.Err()
	}

	id := s.extractor.Extract(raw, now)
	return &Result{
		Input:          raw,
		BirthDate:      id.BirthDate.Format(idnum.DateLayout),
		Gender:         string(id.Gender),
		ProvinceCode:   id.ProvinceCode,
		Province:       id.ProvinceName,
		Age:            id.Age,
		CheckCharacter: id.CheckCharacter,
	}, nil
}
