package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type shellCompletion struct {
	name    string
	short   string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shellCompletion{
	{
		name:    "bash",
		short:   "Generate bash completion script",
		install: "  $ source <(dossier completion bash)\n  $ dossier completion bash > /etc/bash_completion.d/dossier",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	},
	{
		name:    "zsh",
		short:   "Generate zsh completion script",
		install: "  $ source <(dossier completion zsh)\n  $ dossier completion zsh > \"${fpath[1]}/_dossier\"",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		name:    "fish",
		short:   "Generate fish completion script",
		install: "  $ dossier completion fish | source\n  $ dossier completion fish > ~/.config/fish/completions/dossier.fish",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		name:    "powershell",
		short:   "Generate PowerShell completion script",
		install: "  PS> dossier completion powershell | Out-String | Invoke-Expression",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

func newCompletionCmd() *cobra.Command {
	completion := &cobra.Command{
		Use:     "completion [bash|zsh|fish|powershell]",
		Short:   "Generate shell completion scripts",
		GroupID: "utility",
		// Completion must not create the config file, so the root hook is skipped.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}

	for _, sh := range shells {
		completion.AddCommand(&cobra.Command{
			Use:                   sh.name,
			Short:                 sh.short,
			Long:                  fmt.Sprintf("%s.\n\nTo load completions:\n%s", sh.short, sh.install),
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return sh.gen(cmd.Root(), cmd.OutOrStdout())
			},
		})
	}
	return completion
}
