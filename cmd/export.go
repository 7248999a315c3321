package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ddxfish/chatterm/internal/export"
)

var (
	exportSession string
	exportFormat  string
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export a conversation to a file",
	Long: `Export a conversation to txt, json, yaml, or markdown.

The format is inferred from the file extension unless --format is
given. Without --session the most recent conversation is exported.

Examples:
  chatterm export chat.md
  chatterm export chat.json --session 1714501820
  chatterm export backup.txt --format txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportSession, "session", "", "Conversation id to export (default: most recent)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format (txt, json, yaml, md)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	id := exportSession
	if id == "" {
		ids, err := store.List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("no conversations to export")
		}
		id = ids[0]
	}

	messages, err := store.Load(id)
	if err != nil {
		return err
	}

	path := args[0]
	var exporter export.Exporter
	if exportFormat != "" {
		exporter, err = export.New(exportFormat)
		if err != nil {
			return err
		}
	} else {
		exporter = export.ForExtension(strings.TrimPrefix(filepath.Ext(path), "."))
	}

	if err := export.ToFile(exporter, path, messages); err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s\n", id, path)
	return nil
}
