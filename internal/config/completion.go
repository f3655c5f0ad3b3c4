package config

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
)

// CompleteOutputFormat provides shell completion candidates for --output.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return slices.Clone(output.Formats), cobra.ShellCompDirectiveNoFileComp
}

// CompletePAPLevel provides shell completion candidates for --pap-limit.
func CompletePAPLevel(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return slices.Clone(pap.Names), cobra.ShellCompDirectiveNoFileComp
}

// RegisterFlagCompletions wires value completion for the enumerated global flags.
func RegisterFlagCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("output", CompleteOutputFormat)
	_ = cmd.RegisterFlagCompletionFunc("pap-limit", CompletePAPLevel)
	_ = cmd.RegisterFlagCompletionFunc("geoip-db", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"mmdb"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
