package ipgeo

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/imroc/req/v3"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
)

const (
	// DefaultRPS keeps below the ip-api.com free tier limit of 45 requests per minute.
	DefaultRPS float64 = 0.7
	// DefaultBurst is the burst allowed above DefaultRPS.
	DefaultBurst = 5

	ipAPIURL    = "http://ip-api.com/json/"
	ipAPIFields = "status,message,country,countryCode,regionName,city,lat,lon,timezone,isp,org,as,query"
	ipAPISource = "ip-api.com"
)

type ipAPIResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	RegionName  string  `json:"regionName"`
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Timezone    string  `json:"timezone"`
	ISP         string  `json:"isp"`
	Org         string  `json:"org"`
	AS          string  `json:"as"`
}

// OnlineBackend queries the ip-api.com JSON endpoint.
type OnlineBackend struct {
	client *req.Client
}

// NewOnlineBackend returns a Backend using client.
func NewOnlineBackend(client *req.Client) *OnlineBackend {
	return &OnlineBackend{client: client}
}

// PAP is AMBER: the address is sent to ip-api.com.
func (b *OnlineBackend) PAP() pap.Level { return pap.AMBER }

// Locate implements Backend.
func (b *OnlineBackend) Locate(ctx context.Context, ip net.IP) (*Result, error) {
	addr := ip.String()
	var body ipAPIResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParam("fields", ipAPIFields).
		SetSuccessResult(&body).
		Get(ipAPIURL + addr)
	if err != nil {
		return nil, services.TransportError(ipAPISource, addr, err)
	}
	if !resp.IsSuccessState() {
		return nil, services.StatusError(ipAPISource, addr, resp)
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("%w: %s: %s", services.ErrRequestFailed, ipAPISource, body.Message)
	}

	asn, _, _ := strings.Cut(body.AS, " ")
	return &Result{
		Country:     output.StripANSI(body.Country),
		CountryCode: output.StripANSI(body.CountryCode),
		Region:      output.StripANSI(body.RegionName),
		City:        output.StripANSI(body.City),
		Latitude:    body.Lat,
		Longitude:   body.Lon,
		Timezone:    output.StripANSI(body.Timezone),
		ISP:         output.StripANSI(body.ISP),
		Org:         output.StripANSI(body.Org),
		ASN:         output.StripANSI(asn),
		Source:      ipAPISource,
	}, nil
}
