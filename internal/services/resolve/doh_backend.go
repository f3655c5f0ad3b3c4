package resolve

import (
	"context"

	"github.com/imroc/req/v3"
	"github.com/miekg/dns"

	"github.com/dossier-cli/dossier/internal/doh"
	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
)

// DoHBackend queries Quad9 over HTTPS.
type DoHBackend struct {
	client *req.Client
}

// NewDoHBackend returns a Backend using client.
func NewDoHBackend(client *req.Client) *DoHBackend {
	return &DoHBackend{client: client}
}

// PAP is AMBER: the domain is sent to Quad9.
func (b *DoHBackend) PAP() pap.Level { return pap.AMBER }

// Resolve follows the CNAME chain, then asks for A and AAAA records.
func (b *DoHBackend) Resolve(ctx context.Context, domain string) (*Result, error) {
	result := &Result{Source: "quad9"}

	chain, err := b.cnameChain(ctx, domain)
	if err != nil {
		return nil, err
	}
	result.CNAME = chain

	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		resp, err := doh.MakeDoHRequest(ctx, b.client, domain, qtype)
		if err != nil {
			return nil, err
		}
		if resp.Rcode != dns.RcodeSuccess {
			result.Rcode = dns.RcodeToString[resp.Rcode]
			return result, nil
		}
		for _, v := range resp.Data(qtype) {
			v = output.StripANSI(v)
			if qtype == dns.TypeA {
				result.A = append(result.A, v)
			} else {
				result.AAAA = append(result.AAAA, v)
			}
		}
	}
	return result, nil
}

func (b *DoHBackend) cnameChain(ctx context.Context, domain string) ([]string, error) {
	seen := map[string]bool{dns.Fqdn(domain): true}
	current := domain
	var chain []string
	for range maxCNAMEHops {
		resp, err := doh.MakeDoHRequest(ctx, b.client, current, dns.TypeCNAME)
		if err != nil {
			return nil, err
		}
		targets := resp.Data(dns.TypeCNAME)
		if len(targets) == 0 {
			break
		}
		target := output.StripANSI(targets[0])
		if seen[target] {
			break
		}
		seen[target] = true
		chain = append(chain, target)
		current = target
	}
	return chain, nil
}
