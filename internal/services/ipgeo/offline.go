package ipgeo

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
)

const mmdbSource = "maxmind mmdb"

// nameLang is the preferred locale for place names, with English as fallback.
var nameLang = []string{"zh-CN", "en"}

// CityReader is the subset of *geoip2.Reader used by OfflineBackend.
type CityReader interface {
	City(ip net.IP) (*geoip2.City, error)
}

// OfflineBackend answers from a local City database.
type OfflineBackend struct {
	reader CityReader
}

// NewOfflineBackend wraps an open reader.
func NewOfflineBackend(reader CityReader) *OfflineBackend {
	return &OfflineBackend{reader: reader}
}

// OpenOfflineBackend opens the MMDB file at path. The returned close
// function releases the database.
func OpenOfflineBackend(path string) (*OfflineBackend, func() error, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening GeoIP database %q: %w", path, err)
	}
	return NewOfflineBackend(db), db.Close, nil
}

// PAP is RED: the lookup never leaves the machine.
func (b *OfflineBackend) PAP() pap.Level { return pap.RED }

// Locate implements Backend.
func (b *OfflineBackend) Locate(ctx context.Context, ip net.IP) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := b.reader.City(ip)
	if err != nil {
		return nil, fmt.Errorf("%w: %s lookup for %s: %w", services.ErrRequestFailed, mmdbSource, ip, err)
	}

	result := &Result{
		Country:     localName(rec.Country.Names),
		CountryCode: rec.Country.IsoCode,
		City:        localName(rec.City.Names),
		Latitude:    rec.Location.Latitude,
		Longitude:   rec.Location.Longitude,
		Timezone:    rec.Location.TimeZone,
		Source:      mmdbSource,
	}
	if len(rec.Subdivisions) > 0 {
		result.Region = localName(rec.Subdivisions[0].Names)
	}
	return result, nil
}

func localName(names map[string]string) string {
	for _, lang := range nameLang {
		if n := names[lang]; n != "" {
			return n
		}
	}
	return ""
}
