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
	// Name is the service identifier.
	Name = "phone"
	// PAP is AMBER: the number is sent to a third-party API.
	PAP = pap.AMBER

	// DefaultRPS is the request rate used against cenguigui.cn.
	DefaultRPS float64 = 2
	// DefaultBurst is the burst allowed above DefaultRPS.
	DefaultBurst = 4

	saoraoURL    = "https://api.cenguigui.cn/api/saorao/"
	saoraoSource = "cenguigui.cn saorao API"
)

type saoraoResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Tel     string `json:"tel"`
	Info    struct {
		Province string `json:"province"`
		City     string `json:"city"`
		Operator string `json:"operator"`
	} `json:"info"`
	Data []struct {
		Name string `json:"name"`
		Msg  string `json:"msg"`
	} `json:"data"`
}

// Service queries the saorao API for reputation marks on a mobile number.
type Service struct {
	client *req.Client
	logger *slog.Logger
}

// NewService creates a reputation service using client.
func NewService(client *req.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return Name }

// PAP returns the PAP activity level.
func (s *Service) PAP() pap.Level { return PAP }

// AggregateResults combines results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	return aggregate(results)
}

// Run looks up number.
func (s *Service) Run(ctx context.Context, number string) (services.Result, error) {
	number = output.StripANSI(number)
	if err := checkNumber(number); err != nil {
		return nil, err
	}

	var body saoraoResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("tel", number).
		SetSuccessResult(&body).
		Get(saoraoURL)
	if err != nil {
		return nil, services.TransportError(Name, number, err)
	}
	if !resp.IsSuccessState() {
		return nil, services.StatusError(Name, number, resp)
	}
	if !body.Success {
		msg := body.Msg
		if msg == "" {
			msg = "lookup unsuccessful"
		}
		return nil, fmt.Errorf("%w: %s: %s", services.ErrRequestFailed, Name, msg)
	}

	result := &Result{
		Number:   number,
		Location: joinLocation(body.Info.Province, body.Info.City),
		Operator: output.StripANSI(body.Info.Operator),
		Source:   saoraoSource,
	}
	if body.Tel != "" {
		result.Number = output.StripANSI(body.Tel)
	}
	for _, m := range body.Data {
		result.Marks = append(result.Marks, Mark{
			App:     output.StripANSI(m.Name),
			Verdict: output.StripANSI(m.Msg),
		})
	}
	s.logger.Debug("saorao lookup", "number", number, "marks", len(result.Marks))
	return result, nil
}

func checkNumber(number string) error {
	if !services.IsMobileNumber(number) {
		return fmt.Errorf("%w: must be an 11-digit mainland China mobile number: %q", services.ErrInvalidInput, number)
	}
	return nil
}
