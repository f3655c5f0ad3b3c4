package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/imroc/req/v3"
	"github.com/spf13/cobra"

	"github.com/dossier-cli/dossier/internal/config"
	"github.com/dossier-cli/dossier/internal/httpclient"
	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/ratelimit"
	"github.com/dossier-cli/dossier/internal/resolver"
)

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger   *slog.Logger
	cfg      *config.Config
	format   output.Format
	papLevel pap.Level
	doDefang bool
}

// buildDeps resolves config, logger, output format, PAP limit, and defanging.
func buildDeps(cmd *cobra.Command, stderr io.Writer) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.Defang && cfg.NoDefang {
		return nil, fmt.Errorf("--defang and --no-defang are mutually exclusive")
	}
	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("--concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	format := output.Format(cfg.Output)
	if !format.Valid() {
		return nil, fmt.Errorf("invalid output format %q: must be \"text\", \"json\", or \"plain\"", cfg.Output)
	}

	papLevel, err := pap.Parse(cfg.PAPLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid PAP limit %q: %w", cfg.PAPLimit, err)
	}

	return &deps{
		logger:   logger,
		cfg:      cfg,
		format:   format,
		papLevel: papLevel,
		doDefang: output.ResolveDefang(papLevel, format, cfg.Defang, cfg.NoDefang),
	}, nil
}

// newHTTPClient returns a client for one upstream, rate limited to rps.
func (d *deps) newHTTPClient(rps float64, burst int) (*req.Client, error) {
	client, err := httpclient.New(d.cfg.Proxy, d.cfg.UserAgent, d.logger, d.cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}
	httpclient.AttachRateLimit(client, ratelimit.New(rps, burst))
	return client, nil
}

// newResolver returns the system resolver, tunnelled through a SOCKS5 proxy when configured.
func (d *deps) newResolver() (*net.Resolver, error) {
	r, err := resolver.NewResolver(d.cfg.Proxy)
	if err != nil {
		return nil, fmt.Errorf("creating DNS resolver: %w", err)
	}
	return r, nil
}

// writeResult formats result to stdout, defanged when enabled.
func writeResult(stdout io.Writer, d *deps, result any) error {
	w := stdout
	if d.doDefang {
		w = &output.DefangWriter{Inner: stdout}
	}
	if err := output.Write(w, d.format, result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
