package cli

import (
	"github.com/spf13/cobra"
)

func newIPGeoCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "ipgeo [ip...]",
		Short: "Geolocate a public IP address",
		Long: `Geolocate public IPv4 and IPv6 addresses: country, region, city,
coordinates, timezone, and (online only) ISP and ASN.

Without --geoip-db the lookup goes to ip-api.com (PAP AMBER).
With --geoip-db pointing at a GeoLite2/GeoIP2 City database the lookup is
answered locally (PAP RED).`,
		Example: `  # Online lookup
  dossier ipgeo 8.8.8.8

  # Offline lookup from a MaxMind database
  dossier ipgeo --geoip-db ~/GeoLite2-City.mmdb 1.1.1.1`,
		GroupID:           "lookup",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: noFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := d.ipgeoService()
			if err != nil {
				return err
			}
			defer func() {
				if err := closeDB(); err != nil {
					d.logger.Warn("closing GeoIP database", "error", err)
				}
			}()
			return runServiceCmd(cmd, d, svc, args)
		},
	}
}
