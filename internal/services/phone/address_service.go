package phone

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
)

const (
	// AddressName is the region lookup service identifier.
	AddressName = "phone-address"
	// AddressPAP is AMBER: the number is sent to a third-party API.
	AddressPAP = pap.AMBER

	addressURL    = "https://cx.shouji.360.cn/phonearea.php"
	addressSource = "360 phone area API"
)

type addressResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Province string `json:"province"`
		City     string `json:"city"`
		SP       string `json:"sp"`
	} `json:"data"`
}

// AddressService queries 360 for the carrier and home region of a mobile number.
type AddressService struct {
	client *req.Client
	logger *slog.Logger
}

// NewAddressService creates a region lookup service using client.
func NewAddressService(client *req.Client, logger *slog.Logger) *AddressService {
	return &AddressService{client: client, logger: logger}
}

// Name returns the service identifier.
func (s *AddressService) Name() string { return AddressName }

// PAP returns the PAP activity level.
func (s *AddressService) PAP() pap.Level { return AddressPAP }

// AggregateResults combines results into a MultiResult.
func (s *AddressService) AggregateResults(results []services.Result) services.Result {
	return aggregate(results)
}

// Run looks up number.
func (s *AddressService) Run(ctx context.Context, number string) (services.Result, error) {
	number = output.StripANSI(number)
	if err := checkNumber(number); err != nil {
		return nil, err
	}

	var body addressResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("number", number).
		SetSuccessResult(&body).
		Get(addressURL)
	if err != nil {
		return nil, services.TransportError(AddressName, number, err)
	}
	if !resp.IsSuccessState() {
		return nil, services.StatusError(AddressName, number, resp)
	}
	if body.Code != 0 {
		msg := body.Msg
		if msg == "" {
			msg = fmt.Sprintf("code %d", body.Code)
		}
		return nil, fmt.Errorf("%w: %s: %s", services.ErrRequestFailed, AddressName, msg)
	}

	s.logger.Debug("360 lookup", "number", number)
	return &Result{
		Number:   number,
		Location: joinLocation(body.Data.Province, body.Data.City),
		Operator: output.StripANSI(body.Data.SP),
		Source:   addressSource,
	}, nil
}
