package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dossier-cli/dossier/internal/services"
)

const (
	apiSaorao  = "saorao"
	apiAddress = "address"
)

func newPhoneCmd(d *deps) *cobra.Command {
	var api string
	cmd := &cobra.Command{
		Use:   "phone [number...]",
		Short: "Look up spam and fraud marks for a mainland China mobile number",
		Long: `Look up what security apps report about 11-digit mainland China mobile
numbers, together with the carrier and home region.

--api saorao (default) queries the cenguigui.cn saorao API for app marks.
--api address queries the 360 phone area API for region and carrier only.

PAP level: AMBER (numbers are sent to a third-party API).

Multiple inputs can be supplied as arguments or piped via stdin (one per line).
Bulk stdin input is processed concurrently (see --concurrency).`,
		Example: `  # Reputation lookup
  dossier phone 13800138000

  # Region lookup via 360
  dossier phone --api address 13800138000

  # Bulk input from stdin
  cat numbers.txt | dossier phone -o json`,
		GroupID:           "lookup",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: noFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				svc services.Service
				err error
			)
			switch api {
			case apiSaorao:
				svc, err = d.phoneService()
			case apiAddress:
				svc, err = d.phoneAddressService()
			default:
				return fmt.Errorf("%w: --api must be %q or %q, got %q", services.ErrInvalidInput, apiSaorao, apiAddress, api)
			}
			if err != nil {
				return err
			}
			return runServiceCmd(cmd, d, svc, args)
		},
	}
	cmd.Flags().StringVar(&api, "api", apiSaorao, "lookup API: saorao or address")
	_ = cmd.RegisterFlagCompletionFunc("api", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{apiSaorao, apiAddress}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newPhoneAddressCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "phone-address [number...]",
		Short: "Look up the carrier and home region of a mainland China mobile number",
		Long: `Look up the carrier and home region of 11-digit mainland China mobile
numbers using the 360 phone area API. Equivalent to "phone --api address".

PAP level: AMBER (numbers are sent to a third-party API).`,
		Example:           `  dossier phone-address 13912345678`,
		GroupID:           "lookup",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: noFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := d.phoneAddressService()
			if err != nil {
				return err
			}
			return runServiceCmd(cmd, d, svc, args)
		},
	}
}
