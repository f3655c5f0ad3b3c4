// Package cli provides the Cobra command tree and output wiring for dossier.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dossier-cli/dossier/internal/config"
	"github.com/dossier-cli/dossier/internal/version"
	"github.com/dossier-cli/dossier/internal/worker"
)

// newRootCmd builds the top-level command.
// Callers must set stdout/stderr via cmd.SetOut / cmd.SetErr before Execute.
func newRootCmd() *cobra.Command {
	// d is populated by PersistentPreRunE before any subcommand's RunE runs.
	// Cobra only runs the innermost PersistentPreRunE, so subcommands must not
	// define their own unless they also skip d (as completion does).
	var d deps

	cmd := &cobra.Command{
		Use:   "dossier",
		Short: "Keyless lookups for phone numbers, identity numbers, IPs, and domains",
		Long: `dossier looks up mainland China mobile numbers, parses resident identity
numbers offline, geolocates IP addresses, and resolves domains. The same
lookups are available to LLM clients through "dossier serve" (MCP over stdio).

No API keys are required.
PAP levels (least to most active): red < amber < green < white.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := buildDeps(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d = *resolved
			return nil
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	config.RegisterFlagCompletions(cmd)

	cmd.Version = version.Version
	cmd.SetVersionTemplate("dossier version {{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: "lookup", Title: "Lookup Services:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	cmd.AddCommand(
		newIDCardCmd(&d),
		newPhoneCmd(&d),
		newPhoneAddressCmd(&d),
		newIPGeoCmd(&d),
		newResolveCmd(&d),
		newServeCmd(&d),
		newServicesCmd(&d),
		newConfigCmd(&d),
		newCompletionCmd(),
		newVersionCmd(&d),
	)

	cmd.MarkFlagsMutuallyExclusive("defang", "no-defang")

	return cmd
}

// Execute builds the root command and runs it with args, which excludes the
// program name.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// resolveInputs returns the positional args, or the lines of stdin when there
// are none. An interactive stdin with no args is an error.
func resolveInputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	r := cmd.InOrStdin()
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // file descriptors fit in int
		return nil, fmt.Errorf("no input: pass an argument or pipe stdin")
	}
	inputs, err := worker.ReadInputs(r)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input: stdin was empty")
	}
	return inputs, nil
}
