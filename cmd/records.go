package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"kb-admin/core/query"
	"kb-admin/core/reconcile"
	"kb-admin/core/schema"
	"kb-admin/feature/records"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cursorFlags query.Cursor
	applyFile   string
	dryRunApply bool
	yesConfirm  bool
)

// recordsCmd is the parent command for table operations.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Browse and edit the knowledge-base tables",
}

// recordsListCmd prints one page of a table.
var recordsListCmd = &cobra.Command{
	Use:   "list <table>",
	Short: "Print one page of a table as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		page, err := a.records.Page(cmd.Context(), args[0], cursorFlags)
		if page == nil {
			return err
		}
		if err != nil {
			a.log.Warn("Serving empty page", zap.Error(err))
		}
		return printJSON(page)
	},
}

// recordsApplyCmd saves an edited page.
var recordsApplyCmd = &cobra.Command{
	Use:   "apply <table>",
	Short: "Apply an edited page to a table",
	Long: `Apply an edited page to a table.

The page selected by --page/--size/--sort/--dir is fetched as the snapshot and
compared with the rows in --file (a JSON array). Snapshot rows missing from the
file are deleted, rows without an id are created and rows whose fields differ
are updated.

Examples:
  # Show the plan only
  records apply reports --file edited.json --dry-run

  # Apply without the confirmation prompt
  records apply reports --file edited.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordsApply,
}

func init() {
	for _, c := range []*cobra.Command{recordsListCmd, recordsApplyCmd} {
		c.Flags().IntVar(&cursorFlags.Page, "page", 1, "Page number, from 1")
		c.Flags().IntVar(&cursorFlags.Size, "size", query.PageSizes[0], "Page size (25, 50, 100)")
		c.Flags().StringVar(&cursorFlags.Sort, "sort", "", "Sort field (default: the table's default order)")
		c.Flags().StringVar((*string)(&cursorFlags.Dir), "dir", "", "Sort direction (asc, desc)")
	}
	recordsApplyCmd.Flags().StringVar(&applyFile, "file", "", "JSON file with the edited rows")
	recordsApplyCmd.Flags().BoolVar(&dryRunApply, "dry-run", false, "Print the plan without applying it")
	recordsApplyCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletions (non-interactive)")
	_ = recordsApplyCmd.MarkFlagRequired("file")

	recordsCmd.AddCommand(recordsListCmd, recordsApplyCmd)
	RootCmd.AddCommand(recordsCmd)
}

func runRecordsApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	table := args[0]

	edited, err := readEdited(applyFile)
	if err != nil {
		return err
	}

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()
	l := a.log.With(zap.String("table", table))

	page, err := a.records.Page(ctx, table, cursorFlags)
	if err != nil {
		return fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	req := records.ReconcileRequest{Cursor: page.Cursor, Prior: page.Records, Edited: edited, DryRun: true}
	preview, err := a.records.Reconcile(ctx, table, req)
	if err != nil {
		return fmt.Errorf("failed to plan: %w", err)
	}
	printPlan(l, preview.Plan)

	if dryRunApply {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if preview.Plan.Empty() {
		l.Info("Nothing to apply.")
		return nil
	}
	if preview.Plan.Summary.Deletes > 0 && !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	req.DryRun = false
	result, err := a.records.Reconcile(ctx, table, req)
	if result == nil {
		return err
	}
	if err != nil {
		l.Warn("Changes applied but the refresh failed", zap.Error(err))
	}
	for _, o := range result.Outcomes {
		if o.Status == reconcile.StatusFailed {
			l.Error("Action failed", zap.String("action", string(o.Type)), zap.String("id", o.Key), zap.Int("row", o.Row), zap.String("reason", o.Reason))
		}
	}
	l.Info("Save complete", zap.Int("applied", result.Applied), zap.Int("failed", result.Failed), zap.Uint64("version", result.Version))
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d actions failed", result.Failed, result.Applied+result.Failed)
	}
	return nil
}

func readEdited(path string) ([]schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var rows []schema.Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

// printPlan logs the plan summary and every planned action.
func printPlan(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary
	l.Info("Reconcile plan",
		zap.Int("deletes", s.Deletes),
		zap.Int("creates", s.Creates),
		zap.Int("updates", s.Updates),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("rejected", s.Rejected),
	)
	for _, line := range reconcile.Describe(plan) {
		fmt.Println("  " + line)
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm deleting rows: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

