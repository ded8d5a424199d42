package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// uploadCmd uploads a document for a record.
var uploadCmd = &cobra.Command{
	Use:   "upload <table> <id> <file>",
	Short: "Upload a document for a record and stamp its upload time",
	Long: `Copies a pdf, docx or txt file to the configured upload target (s3, nas or
local) as "<id><ext>" in the table's folder, then sets the record's uploaded_time.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, id, path := args[0], args[1], args[2]

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.records.Upload(cmd.Context(), table, id, filepath.Base(path), f)
		if err != nil {
			return err
		}
		a.log.Info("Upload complete",
			zap.String("table", result.Table),
			zap.String("id", result.ID),
			zap.String("destination", result.Destination),
			zap.String("file", result.FileName),
			zap.Time("uploaded_time", result.UploadedTime),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(uploadCmd)
}
