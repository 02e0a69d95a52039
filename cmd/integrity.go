package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"catalog-sync/core/storage"
	"catalog-sync/feature/integrity"

	"github.com/spf13/cobra"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the catalog schema and report bucket",
	Long:  `Compares the catalog database with the catalog models and checks the run report bucket. Use --fix to create a missing bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, logg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, _, err := openStore(ctx, cfg, logg, false)
		if err != nil {
			return err
		}

		var client storage.Client
		if cfg.Storage.Enabled {
			if client, err = storage.NewClient(cfg.Storage); err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		svc := integrity.NewService(db, client, cfg.Storage.Bucket, cfg.Catalog.ReportPrefix, logg)
		out := make(map[string]any)

		schemaReport, err := svc.CheckSchema()
		if err != nil {
			return err
		}
		out["schema"] = schemaReport

		bucketReport, err := svc.CheckBucket(ctx)
		switch {
		case errors.Is(err, integrity.ErrStorageDisabled):
			out["bucket"] = map[string]string{"status": "disabled"}
		case err != nil:
			return err
		default:
			if !bucketReport.Exists && fixFlag {
				if err := svc.FixBucket(ctx); err != nil {
					return err
				}
				bucketReport.Exists = true
			}
			out["bucket"] = bucketReport
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}

		if !schemaReport.Matched {
			return errors.New("catalog schema does not match the models")
		}
		return nil
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the report bucket when missing")
	RootCmd.AddCommand(integrityCmd)
}
