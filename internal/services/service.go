package services

import (
	"context"

	"github.com/dossier-cli/dossier/internal/apperr"
	"github.com/dossier-cli/dossier/internal/pap"
)

// ErrInvalidInput is re-exported from apperr so service callers need a single import.
var ErrInvalidInput = apperr.ErrInvalidInput

// ErrRequestFailed is re-exported from apperr.
var ErrRequestFailed = apperr.ErrRequestFailed

// ErrPAPBlocked is re-exported from apperr.
var ErrPAPBlocked = apperr.ErrPAPBlocked

// Result is the common interface every service's Run output must satisfy.
type Result interface {
	IsEmpty() bool
}

// Service is the contract every dossier service must implement.
type Service interface {
	Name() string
	PAP() pap.Level
	Run(ctx context.Context, input string) (Result, error)
	AggregateResults(results []Result) Result
}
