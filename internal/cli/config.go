package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dossier-cli/dossier/internal/config"
	"github.com/dossier-cli/dossier/internal/httpclient"
	"github.com/dossier-cli/dossier/internal/output"
)

func newConfigCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Read and write dossier config file values",
		GroupID: "utility",
	}
	cmd.AddCommand(
		newConfigPathCmd(d),
		newConfigShowCmd(d),
		newConfigGetCmd(d),
		newConfigSetCmd(d),
		newConfigUnsetCmd(d),
		newConfigEditCmd(d),
	)
	return cmd
}

func newConfigPathCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), d.cfg.ConfigFile)
			return err
		},
	}
}

// effectiveValue returns the value in effect for key after defaults, the
// config file, env vars, and flags are applied.
func effectiveValue(d *deps, key string) string {
	switch key {
	case "verbose":
		return strconv.FormatBool(d.cfg.Verbose)
	case "output":
		return d.cfg.Output
	case "proxy":
		return httpclient.ResolveProxy(d.cfg.Proxy)
	case "user_agent":
		return httpclient.ResolveUserAgent(d.cfg.UserAgent)
	case "pap_limit":
		return d.cfg.PAPLimit
	case "defang":
		return strconv.FormatBool(d.cfg.Defang)
	case "no_defang":
		return strconv.FormatBool(d.cfg.NoDefang)
	case "concurrency":
		return strconv.Itoa(d.cfg.Concurrency)
	case "geoip_db":
		return d.cfg.GeoIPDB
	default:
		return ""
	}
}

func newConfigShowCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display all effective config settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			keys := config.ValidKeys()
			switch d.format {
			case output.FormatJSON:
				m := make(map[string]string, len(keys))
				for _, k := range keys {
					m[k] = effectiveValue(d, k)
				}
				return output.WriteJSON(w, m)
			case output.FormatPlain:
				for _, k := range keys {
					if _, err := fmt.Fprintf(w, "%s=%s\n", k, effectiveValue(d, k)); err != nil {
						return err
					}
				}
				return nil
			default:
				rows := make([][]string, len(keys))
				for i, k := range keys {
					rows[i] = []string{k, effectiveValue(d, k)}
				}
				table := output.NewWrappingTable(w, 20, 6)
				table.Header([]string{"KEY", "VALUE"})
				if err := table.Bulk(rows); err != nil {
					return err
				}
				return table.Render()
			}
		},
	}
}

func completeConfigKey(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func newConfigGetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Print the effective value of a config key",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := config.NormalizeKey(args[0])
			if err := config.ValidateKey(key); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), effectiveValue(d, key))
			return err
		},
	}
}

func newConfigSetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value and persist it to the config file",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
			case 1:
				return config.KeyCompletions(config.NormalizeKey(args[0])), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			key := config.NormalizeKey(args[0])
			if err := config.ValidateKey(key); err != nil {
				return err
			}
			value, err := config.ParseValue(key, args[1])
			if err != nil {
				return err
			}
			return updateConfigFile(d.cfg.ConfigFile, func(raw map[string]any) { raw[key] = value })
		},
	}
}

func newConfigUnsetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:               "unset <key>",
		Short:             "Remove a key from the config file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKey,
		RunE: func(_ *cobra.Command, args []string) error {
			key := config.NormalizeKey(args[0])
			if err := config.ValidateKey(key); err != nil {
				return err
			}
			return updateConfigFile(d.cfg.ConfigFile, func(raw map[string]any) { delete(raw, key) })
		},
	}
}

// updateConfigFile applies change to the keys stored in the file at path.
// Only keys already present in the file, plus the change, are written back.
func updateConfigFile(path string, change func(raw map[string]any)) error {
	raw := map[string]any{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	}

	change(raw)

	out, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func newConfigEditCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the config file in $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = os.Getenv("VISUAL")
			}
			if editor == "" {
				editor = "vi"
			}
			c := exec.CommandContext(cmd.Context(), editor, d.cfg.ConfigFile) //nolint:gosec // editor comes from $EDITOR or $VISUAL
			c.Stdin = cmd.InOrStdin()
			c.Stdout = cmd.OutOrStdout()
			c.Stderr = cmd.ErrOrStderr()
			return c.Run()
		},
	}
}
