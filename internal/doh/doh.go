// Package doh sends RFC 8484 wire-format DNS queries to Quad9 over HTTPS.
package doh

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/imroc/req/v3"
	"github.com/miekg/dns"

	"github.com/dossier-cli/dossier/internal/services"
)

const (
	// Endpoint is the Quad9 DNS-over-HTTPS URL.
	Endpoint = "https://dns.quad9.net/dns-query"

	// DefaultRPS is the request rate used against Quad9.
	DefaultRPS float64 = 5
	// DefaultBurst is the burst allowed above DefaultRPS.
	DefaultBurst = 10

	mediaType = "application/dns-message"
)

// Response is a decoded DNS reply.
type Response struct {
	Rcode  int
	Answer []Answer
}

// Answer is one resource record of the answer section.
type Answer struct {
	Name string
	Type uint16
	TTL  uint32
	Data string
}

// Data returns the record data of every answer with the given type.
func (r *Response) Data(qtype uint16) []string {
	var out []string
	for _, a := range r.Answer {
		if a.Type == qtype {
			out = append(out, a.Data)
		}
	}
	return out
}

func buildQuery(domain string, qtype uint16) ([]byte, error) {
	if _, ok := dns.TypeToString[qtype]; !ok {
		return nil, fmt.Errorf("unknown DNS record type %d", qtype)
	}
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), qtype)
	// RFC 8484 asks for ID 0 so responses stay cache friendly.
	m.Id = 0
	return m.Pack()
}

func parseResponse(data []byte) (*Response, error) {
	m := new(dns.Msg)
	if err := m.Unpack(data); err != nil {
		return nil, fmt.Errorf("parsing DNS response: %w", err)
	}
	resp := &Response{Rcode: m.Rcode}
	for _, rr := range m.Answer {
		hdr := rr.Header()
		ans := Answer{Name: hdr.Name, Type: hdr.Rrtype, TTL: hdr.Ttl}
		switch v := rr.(type) {
		case *dns.A:
			ans.Data = v.A.String()
		case *dns.AAAA:
			ans.Data = v.AAAA.String()
		case *dns.CNAME:
			ans.Data = v.Target
		default:
			continue
		}
		resp.Answer = append(resp.Answer, ans)
	}
	return resp, nil
}

// MakeDoHRequest queries Quad9 for domain and qtype using a GET request
// carrying the base64url-encoded query.
func MakeDoHRequest(ctx context.Context, client *req.Client, domain string, qtype uint16) (*Response, error) {
	query, err := buildQuery(domain, qtype)
	if err != nil {
		return nil, fmt.Errorf("%w: building query for %q: %w", services.ErrRequestFailed, domain, err)
	}

	httpResp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", mediaType).
		SetQueryParam("dns", base64.RawURLEncoding.EncodeToString(query)).
		Get(Endpoint)
	if err != nil {
		return nil, services.TransportError("quad9", domain, err)
	}
	if !httpResp.IsSuccessState() {
		return nil, fmt.Errorf("%w: quad9 returned HTTP %d for %q", services.ErrRequestFailed, httpResp.StatusCode, domain)
	}

	resp, err := parseResponse(httpResp.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrRequestFailed, err)
	}
	return resp, nil
}
