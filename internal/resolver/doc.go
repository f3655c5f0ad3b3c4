// Package resolver builds the *net.Resolver used by the system DNS backend.
// A SOCKS5 proxy, configured or taken from ALL_PROXY, carries DNS over TCP
// so lookups do not leave through the local network.
package resolver
