package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	core "catalog-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncJSON bool

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass",
	Long:  `Fetches the product feed once, reconciles the catalog and notifies downstream consumers. Exits non-zero when any item failed or the run aborted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		summary, runErr := a.service.Sync(ctx)
		if summary == nil {
			return runErr
		}

		if syncJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(summary); err != nil {
				return err
			}
		} else {
			a.logger.Info("Reconciliation finished",
				zap.String("run_id", summary.RunID),
				zap.Int("items", summary.Plan.TotalItems),
				zap.Int("created", summary.Created),
				zap.Int("updated", summary.Updated),
				zap.Int("skipped", summary.Skipped),
				zap.Int("failed", summary.Failed),
				zap.Bool("aborted", summary.Aborted),
				zap.String("duration", summary.Duration),
			)
			for _, r := range summary.Results {
				if r.Status == core.StatusFailed {
					a.logger.Warn("Item failed", zap.String("key", r.Key), zap.String("error", r.Error))
				}
			}
			if summary.FinalizeError != "" {
				a.logger.Warn("Downstream notification failed", zap.String("error", summary.FinalizeError))
			}
		}

		if runErr != nil {
			return runErr
		}
		if !summary.IsSuccess() {
			return fmt.Errorf("reconciliation finished with %d failed item(s): %w", summary.Failed, errors.Join(summary.Errors()...))
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Print the run summary as JSON")
	RootCmd.AddCommand(syncCmd)
}
