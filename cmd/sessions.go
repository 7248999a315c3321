package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddxfish/chatterm/internal/config"
	"github.com/ddxfish/chatterm/internal/history"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored conversations",
	Long: `List, delete, and rename stored conversations.

Examples:
  chatterm sessions                     # list conversations, newest first
  chatterm sessions delete 1714501820
  chatterm sessions rename 1714501820 "Go questions"`,
	RunE: runSessionsList,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	RunE:  runSessionsList,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a conversation",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionsRename,
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsRenameCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func openStore() (*history.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	dir, err := cfg.ResolveHistoryDir()
	if err != nil {
		return nil, err
	}
	return history.NewStore(dir)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	ids, err := store.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No conversations yet.")
		return nil
	}
	for _, id := range ids {
		messages, err := store.Load(id)
		if err != nil {
			fmt.Printf("%s  (unreadable: %v)\n", id, err)
			continue
		}
		fmt.Printf("%s  (%d messages)\n", id, len(messages))
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	replacement, err := store.Delete(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	if replacement != "" {
		fmt.Printf("Created empty conversation %s\n", replacement)
	}
	return nil
}

func runSessionsRename(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	newID, err := store.Rename(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Renamed %s -> %s\n", args[0], newID)
	return nil
}
