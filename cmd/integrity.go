package cmd

import (
	"context"
	"errors"

	"kb-admin/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the database schema and the upload folders",
	Long:  `Checks that every managed column exists in the database and that each table has its upload folder in the storage bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare table schemas with the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix upload folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, storageCmd)
	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
}

func runIntegrityChecks(ctx context.Context, runSchema, runStorage bool) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()
	logg := a.log

	svc := integrity.NewService(a.storage, a.cfg.Storage.Bucket, a.cfg.Upload.BasePath, a.db, a.records.Registry().Schemas(), logg)

	if runSchema {
		logg.Info("Checking table schemas...")
		report, err := svc.CheckSchema()
		if err != nil {
			return err
		}
		if report.Matched {
			logg.Info("Schema matches the managed tables.")
		} else {
			logg.Warn("Schema mismatches found")
			for table, tbl := range report.Tables {
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.String("status", tbl.Status), zap.Strings("columns", tbl.MissingColumns))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if runStorage {
		logg.Info("Checking upload folders...")
		missing, err := svc.CheckStorageOrMissing(ctx)
		switch {
		case errors.Is(err, integrity.ErrStorageDisabled):
			logg.Info("Object storage not configured, skipping folder check.")
			return nil
		case err != nil:
			return err
		}

		if len(missing) == 0 {
			logg.Info("Upload folders are intact.")
			return nil
		}
		logg.Warn("Missing folders detected", zap.Strings("missing", missing))
		if !fixFlag {
			logg.Info("Run with --fix to create missing folders.")
			return nil
		}
		logg.Info("Fixing missing folders...")
		if err := svc.FixStorage(ctx, missing); err != nil {
			return err
		}
		logg.Info("Folders fixed successfully.")
	}
	return nil
}
