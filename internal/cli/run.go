package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
	"github.com/dossier-cli/dossier/internal/worker"
)

// runServiceCmd is the shared RunE body of every lookup command: PAP gate,
// input resolution, single or bulk execution, and output.
func runServiceCmd(cmd *cobra.Command, d *deps, svc services.Service, args []string) error {
	if err := pap.Check(d.papLevel, svc.PAP(), svc.Name()); err != nil {
		return err
	}

	inputs, err := resolveInputs(cmd, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if len(inputs) == 1 {
		result, err := svc.Run(ctx, inputs[0])
		if err != nil {
			return err
		}
		if result.IsEmpty() {
			d.logger.Info("no results", "service", svc.Name())
			return nil
		}
		return writeResult(cmd.OutOrStdout(), d, result)
	}

	results := worker.Run(ctx, svc, inputs, d.cfg.Concurrency)
	var (
		outputs []services.Result
		failed  int
		lastErr error
	)
	// Inputs are logged by position only; they may be personal identifiers.
	for i, r := range results {
		if r.Err != nil {
			failed++
			lastErr = r.Err
			d.logger.Warn("lookup failed", "service", svc.Name(), "line", i+1, "error", r.Err)
			continue
		}
		if r.Output.IsEmpty() {
			d.logger.Debug("no results", "service", svc.Name(), "line", i+1)
			continue
		}
		outputs = append(outputs, r.Output)
	}
	if failed == len(results) {
		return fmt.Errorf("all %d inputs failed: %w", failed, lastErr)
	}
	if len(outputs) == 0 {
		d.logger.Info("no results", "service", svc.Name(), "inputs", len(inputs))
		return nil
	}
	return writeResult(cmd.OutOrStdout(), d, svc.AggregateResults(outputs))
}

func noFileCompletion(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveNoFileComp
}
