// Package config resolves dossier's runtime settings from flags, environment
// variables, and the YAML config file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dossier-cli/dossier/internal/appdir"
	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
)

// EnvPrefix prefixes every environment override, e.g. DOSSIER_PAP_LIMIT.
const EnvPrefix = "DOSSIER"

// ErrUnknownKey is returned for config keys dossier does not recognise.
var ErrUnknownKey = errors.New("unknown config key")

// Config is the fully resolved configuration for one invocation.
type Config struct {
	ConfigFile  string
	Verbose     bool
	Output      string
	Proxy       string
	UserAgent   string
	PAPLimit    string
	Defang      bool
	NoDefang    bool
	Concurrency int
	GeoIPDB     string
}

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindEnum
)

type keySpec struct {
	flag string
	kind keyKind
	enum []string
}

// keys maps each config file key to its flag and value type.
var keys = map[string]keySpec{
	"verbose":     {flag: "verbose", kind: kindBool},
	"output":      {flag: "output", kind: kindEnum, enum: output.Formats},
	"proxy":       {flag: "proxy", kind: kindString},
	"user_agent":  {flag: "user-agent", kind: kindString},
	"pap_limit":   {flag: "pap-limit", kind: kindEnum, enum: pap.Names},
	"defang":      {flag: "defang", kind: kindBool},
	"no_defang":   {flag: "no-defang", kind: kindBool},
	"concurrency": {flag: "concurrency", kind: kindInt},
	"geoip_db":    {flag: "geoip-db", kind: kindString},
}

// RegisterFlags adds every global flag to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default: <user config dir>/dossier/config.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.StringP("output", "o", string(output.FormatText), "output format: text, json, plain")
	flags.String("proxy", "", "proxy URL for HTTP and DNS (http://, https://, socks5://)")
	flags.String("user-agent", "", "override the HTTP User-Agent")
	flags.String("pap-limit", "white", "Permissible Actions Protocol limit: red, amber, green, white")
	flags.Bool("defang", false, "defang hostnames and IPs in output")
	flags.Bool("no-defang", false, "never defang output (overrides PAP-triggered defanging)")
	flags.IntP("concurrency", "c", 10, "concurrent workers for bulk input")
	flags.String("geoip-db", "", "path to a GeoLite2/GeoIP2 City database for offline IP geolocation")
}

// DefaultConfigPath returns <user config dir>/dossier/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := appdir.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load resolves the configuration. Precedence, highest first: explicitly set
// flags, DOSSIER_* environment variables, the config file, flag defaults.
// The config file is created empty (0600) when missing.
func Load(flags *pflag.FlagSet) (*Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	if err := appdir.EnsureFile(path); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, spec := range keys {
		if f := flags.Lookup(spec.flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %q: %w", spec.flag, err)
			}
		}
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	return &Config{
		ConfigFile:  path,
		Verbose:     v.GetBool("verbose"),
		Output:      v.GetString("output"),
		Proxy:       v.GetString("proxy"),
		UserAgent:   v.GetString("user_agent"),
		PAPLimit:    v.GetString("pap_limit"),
		Defang:      v.GetBool("defang"),
		NoDefang:    v.GetBool("no_defang"),
		Concurrency: v.GetInt("concurrency"),
		GeoIPDB:     v.GetString("geoip_db"),
	}, nil
}

// NormalizeKey converts flag-style names to config keys ("pap-limit" → "pap_limit").
func NormalizeKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// ValidKeys returns every config key in sorted order.
func ValidKeys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// ValidateKey returns ErrUnknownKey when key is not a config key.
func ValidateKey(key string) error {
	if _, ok := keys[NormalizeKey(key)]; !ok {
		return fmt.Errorf("%w: %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(ValidKeys(), ", "))
	}
	return nil
}

// ParseValue converts the string value for key into the type written to the
// config file, rejecting values the key cannot hold.
func ParseValue(key, value string) (any, error) {
	key = NormalizeKey(key)
	spec, ok := keys[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	switch spec.kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		return b, nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		return n, nil
	case kindEnum:
		v := strings.ToLower(value)
		if !slices.Contains(spec.enum, v) {
			return nil, fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(spec.enum, ", "), value)
		}
		return v, nil
	default:
		return value, nil
	}
}

// KeyCompletions returns shell completion candidates for the value of key.
func KeyCompletions(key string) []string {
	spec, ok := keys[NormalizeKey(key)]
	if !ok {
		return nil
	}
	switch spec.kind {
	case kindBool:
		return []string{"true", "false"}
	case kindEnum:
		return slices.Clone(spec.enum)
	default:
		return nil
	}
}
