package cli

import (
	"github.com/spf13/cobra"
)

func newIDCardCmd(d *deps) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "idcard [number...]",
		Short: "Validate a resident identity number and derive birth date, gender, region, and age",
		Long: `Validate 18-character resident identity numbers and derive the holder's
birth date, gender, province, age, and check character.

Validation checks structure, the embedded birth date, and the ISO 7064
MOD 11-2 check character. Parsing is fully offline and nothing is stored.

PAP level: RED (no network traffic).

Multiple inputs can be supplied as arguments or piped via stdin (one per line).`,
		Example: `  # Parse one identity number
  dossier idcard 110101199003070011

  # Compute age as of a fixed date
  dossier idcard --at 2024-03-06 110101199003070011

  # Bulk input from stdin, JSON output
  cat ids.txt | dossier idcard -o json`,
		GroupID:           "lookup",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: noFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := d.idcardService(at)
			if err != nil {
				return err
			}
			return runServiceCmd(cmd, d, svc, args)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "reference date for age (YYYY-MM-DD, default: today)")
	return cmd
}
