package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dossier-cli/dossier/internal/mcpserver"
)

func newServeCmd(d *deps) *cobra.Command {
	var (
		system      bool
		printConfig bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lookups as MCP tools over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout so LLM clients can call
the lookups as tools:

  query_phone_number   phone reputation (apiType saorao) or area (apiType address)
  query_phone_address  phone area and carrier
  query_id_card        offline identity-number validation and parsing
  query_ip_location    IP geolocation
  resolve_domain       CNAME chain and A/AAAA records

Tools whose PAP level exceeds --pap-limit are not offered to the client.
Logs go to stderr; stdout carries the protocol.`,
		Example: `  # Print the mcpServers block for a client configuration file
  dossier serve --print-client-config

  # Only offer tools that never leave the machine
  dossier serve --pap-limit red --geoip-db ~/GeoLite2-City.mmdb`,
		GroupID: "utility",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printConfig {
				exe, err := os.Executable()
				if err != nil {
					return fmt.Errorf("locating executable: %w", err)
				}
				return mcpserver.PrintClientConfig(cmd.OutOrStdout(), exe, []string{"serve"})
			}

			svcs, closeDB, err := d.mcpServices(system)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeDB(); err != nil {
					d.logger.Warn("closing GeoIP database", "error", err)
				}
			}()

			srv := mcpserver.New(svcs, d.papLevel, d.logger)
			if len(srv.Tools()) == 0 {
				return errors.New("no tools available under the current PAP limit")
			}
			return srv.ServeStdio()
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, "resolve_domain uses the system resolver instead of Quad9 DoH")
	cmd.Flags().BoolVar(&printConfig, "print-client-config", false, "print the MCP client configuration and exit")
	return cmd
}

// mcpServices builds every backend the tool server dispatches to.
func (d *deps) mcpServices(system bool) (mcpserver.Services, func() error, error) {
	idSvc, err := d.idcardService("")
	if err != nil {
		return mcpserver.Services{}, nil, err
	}
	phoneSvc, err := d.phoneService()
	if err != nil {
		return mcpserver.Services{}, nil, err
	}
	addrSvc, err := d.phoneAddressService()
	if err != nil {
		return mcpserver.Services{}, nil, err
	}
	resolveSvc, err := d.resolveService(system)
	if err != nil {
		return mcpserver.Services{}, nil, err
	}
	geoSvc, closeDB, err := d.ipgeoService()
	if err != nil {
		return mcpserver.Services{}, nil, err
	}
	return mcpserver.Services{
		Phone:        phoneSvc,
		PhoneAddress: addrSvc,
		IDCard:       idSvc,
		IPGeo:        geoSvc,
		Resolve:      resolveSvc,
	}, closeDB, nil
}
