package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	idnum "github.com/dossier-cli/dossier/internal/idcard"
	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services/idcard"
	"github.com/dossier-cli/dossier/internal/services/ipgeo"
	"github.com/dossier-cli/dossier/internal/services/phone"
	"github.com/dossier-cli/dossier/internal/services/resolve"
)

type serviceEntry struct {
	Name    string `json:"name"`
	Backend string `json:"backend"`
	PAP     string `json:"pap"`
}

// allServices lists every service and backend in a fixed order.
func allServices() []serviceEntry {
	metas := []struct {
		name    string
		backend string
		level   pap.Level
	}{
		{idcard.Name, fmt.Sprintf("offline (%d provinces)", idnum.DefaultRegistry().Len()), idcard.PAP},
		{ipgeo.Name, "ip-api.com", pap.AMBER},
		{ipgeo.Name, "--geoip-db", pap.RED},
		{phone.Name, "cenguigui.cn", phone.PAP},
		{phone.AddressName, "360", phone.AddressPAP},
		{resolve.Name, "quad9 doh", pap.AMBER},
		{resolve.Name, "--system", pap.GREEN},
	}
	entries := make([]serviceEntry, len(metas))
	for i, m := range metas {
		entries[i] = serviceEntry{Name: m.name, Backend: m.backend, PAP: m.level.String()}
	}
	return entries
}

func newServicesCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "services",
		Short:   "List all services and their PAP levels",
		Args:    cobra.NoArgs,
		GroupID: "utility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := allServices()
			w := cmd.OutOrStdout()
			switch d.format {
			case output.FormatJSON:
				return output.WriteJSON(w, entries)
			case output.FormatPlain:
				return writeServicesPlain(w, entries)
			default:
				return writeServicesTable(w, entries)
			}
		},
	}
}

func writeServicesTable(w io.Writer, entries []serviceEntry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, e.Backend, e.PAP}
	}
	table := output.NewGroupedWrappingTable(w, 20, 30)
	table.Header([]string{"Service", "Backend", "PAP"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func writeServicesPlain(w io.Writer, entries []serviceEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Backend, e.PAP); err != nil {
			return err
		}
	}
	return nil
}
