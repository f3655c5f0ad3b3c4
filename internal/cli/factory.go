package cli

import (
	"fmt"
	"time"

	"github.com/dossier-cli/dossier/internal/doh"
	idnum "github.com/dossier-cli/dossier/internal/idcard"
	"github.com/dossier-cli/dossier/internal/services"
	"github.com/dossier-cli/dossier/internal/services/idcard"
	"github.com/dossier-cli/dossier/internal/services/ipgeo"
	"github.com/dossier-cli/dossier/internal/services/phone"
	"github.com/dossier-cli/dossier/internal/services/resolve"
)

func nopClose() error { return nil }

// idcardService returns the identity-number service. A non-empty at pins the
// reference date (YYYY-MM-DD) used for age.
func (d *deps) idcardService(at string) (*idcard.Service, error) {
	var opts []idcard.Option
	if at != "" {
		ref, err := time.ParseInLocation(idnum.DateLayout, at, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: --at must be YYYY-MM-DD: %q", services.ErrInvalidInput, at)
		}
		opts = append(opts, idcard.WithClock(func() time.Time { return ref }))
	}
	return idcard.NewService(d.logger, opts...), nil
}

func (d *deps) phoneService() (*phone.Service, error) {
	client, err := d.newHTTPClient(phone.DefaultRPS, phone.DefaultBurst)
	if err != nil {
		return nil, err
	}
	return phone.NewService(client, d.logger), nil
}

func (d *deps) phoneAddressService() (*phone.AddressService, error) {
	client, err := d.newHTTPClient(phone.DefaultRPS, phone.DefaultBurst)
	if err != nil {
		return nil, err
	}
	return phone.NewAddressService(client, d.logger), nil
}

// ipgeoService uses the offline database when --geoip-db is set. The returned
// function releases it.
func (d *deps) ipgeoService() (*ipgeo.Service, func() error, error) {
	if d.cfg.GeoIPDB != "" {
		backend, closeDB, err := ipgeo.OpenOfflineBackend(d.cfg.GeoIPDB)
		if err != nil {
			return nil, nil, err
		}
		return ipgeo.NewService(backend, d.logger), closeDB, nil
	}
	client, err := d.newHTTPClient(ipgeo.DefaultRPS, ipgeo.DefaultBurst)
	if err != nil {
		return nil, nil, err
	}
	return ipgeo.NewService(ipgeo.NewOnlineBackend(client), d.logger), nopClose, nil
}

// resolveService uses Quad9 DoH unless system is set.
func (d *deps) resolveService(system bool) (*resolve.Service, error) {
	if system {
		r, err := d.newResolver()
		if err != nil {
			return nil, err
		}
		return resolve.NewService(resolve.NewSystemBackend(r), d.logger), nil
	}
	client, err := d.newHTTPClient(doh.DefaultRPS, doh.DefaultBurst)
	if err != nil {
		return nil, err
	}
	client.EnableForceHTTP2()
	return resolve.NewService(resolve.NewDoHBackend(client), d.logger), nil
}
