// Package resolve maps a domain to its CNAME chain and addresses, through
// Quad9 DNS-over-HTTPS or the system resolver.
package resolve
