package cli

import (
	"github.com/spf13/cobra"
)

func newResolveCmd(d *deps) *cobra.Command {
	var system bool
	cmd := &cobra.Command{
		Use:   "resolve [domain...]",
		Short: "Resolve a domain to its CNAME chain and IP addresses",
		Long: `Resolve domains to their CNAME chain and A/AAAA records.

By default queries go to Quad9 over DNS-over-HTTPS (PAP AMBER).
--system uses the platform resolver instead (PAP GREEN); with a socks5://
proxy configured, system queries are tunnelled through it over TCP.`,
		Example: `  dossier resolve example.com
  dossier resolve --system example.com example.org
  cat domains.txt | dossier resolve -o plain`,
		GroupID:           "lookup",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: noFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := d.resolveService(system)
			if err != nil {
				return err
			}
			return runServiceCmd(cmd, d, svc, args)
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, "use the system resolver instead of Quad9 DoH")
	return cmd
}
