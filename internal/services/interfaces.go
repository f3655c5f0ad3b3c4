// Package services defines shared interfaces and types used across service implementations.
package services

import (
	"context"
	"net"
)

// DNSResolverInterface abstracts net.Resolver for the system resolve backend.
// *net.Resolver satisfies this interface directly.
type DNSResolverInterface interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
}
