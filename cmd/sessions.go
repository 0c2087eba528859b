package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/longkey1/mentorchat/internal/mentor/config"
	"github.com/longkey1/mentorchat/internal/mentor/session"
	"github.com/spf13/cobra"
)

// sessionsCmd represents the sessions command
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved conversations",
	Long: `Manage saved conversations including listing, viewing, renaming and deleting them.

Sessions keep the transcript of a chat so it can be continued with 'mentorchat chat --session'.`,
}

// openSessionStore loads the config and opens the configured store.
func openSessionStore() (*config.Config, session.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := session.Open(cfg.SessionStore, cfg.SessionDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session store: %w", err)
	}
	return cfg, store, nil
}

// confirm asks a yes/no question and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}

// sessionsListCmd represents the sessions list command
var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	Long:  `List all saved sessions sorted by most recently updated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openSessionStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sessions, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			fmt.Fprintln(out, "\nStart a saved chat with:")
			fmt.Fprintln(out, "  mentorchat chat")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tVARIANT\tUPDATED\tMESSAGES\tNAME")
		fmt.Fprintln(w, "--\t-------\t-------\t--------\t----")

		for _, sess := range sessions {
			name := sess.Name
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				sess.GetShortID(),
				sess.Variant,
				sess.UpdatedAt.Local().Format("2006-01-02 15:04"),
				sess.MessageCount(),
				name,
			)
		}
		w.Flush()

		fmt.Fprintln(out, "\nUse 'mentorchat sessions show <id>' to view session details.")
		return nil
	},
}

// sessionsShowCmd represents the sessions show command
var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show session details and history",
	Long: `Show detailed information about a session including all messages.

The ID can be a short ID (minimum 4 characters), full UUID, or "latest" for the most recent session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openSessionStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sess, err := session.FindByPrefix(cmd.Context(), store, args[0])
		if err != nil {
			return fmt.Errorf("finding session: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Session: %s\n", sess.ID)
		if sess.Name != "" {
			fmt.Fprintf(out, "Name: %s\n", sess.Name)
		}
		fmt.Fprintf(out, "Variant: %s\n", sess.Variant)
		fmt.Fprintf(out, "Created: %s\n", sess.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Updated: %s\n", sess.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Messages: %d\n", sess.MessageCount())
		fmt.Fprintln(out)

		if len(sess.Messages) == 0 {
			fmt.Fprintln(out, "No messages in this session.")
			return nil
		}

		fmt.Fprintln(out, "Message History:")
		fmt.Fprintln(out, "----------------")
		for i, msg := range sess.Messages {
			fmt.Fprintf(out, "\n[%d] %s (%s):\n%s\n",
				i+1,
				msg.Label(),
				msg.Timestamp.Local().Format("2006-01-02 15:04:05"),
				msg.Content,
			)
		}

		fmt.Fprintf(out, "\nContinue this session with:\n  mentorchat chat -s %s\n", sess.GetShortID())
		return nil
	},
}

// sessionsDeleteCmd represents the sessions delete command
var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Long: `Delete a saved session permanently.

The ID can be a short ID (minimum 4 characters), full UUID, or "latest" for the most recent session.

Warning: This action cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openSessionStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sess, err := session.FindByPrefix(cmd.Context(), store, args[0])
		if err != nil {
			return fmt.Errorf("finding session: %w", err)
		}

		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Are you sure you want to delete session %s?", sess.GetShortID())) {
			fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
			return nil
		}

		if err := store.Delete(cmd.Context(), sess.ID); err != nil {
			return fmt.Errorf("deleting session: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Session %s deleted successfully.\n", sess.GetShortID())
		return nil
	},
}

// sessionsRenameCmd represents the sessions rename command
var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a session",
	Long: `Rename a saved session.

The ID can be a short ID (minimum 4 characters), full UUID, or "latest" for the most recent session.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openSessionStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sess, err := session.FindByPrefix(cmd.Context(), store, args[0])
		if err != nil {
			return fmt.Errorf("finding session: %w", err)
		}

		sess.Name = args[1]
		if err := store.Save(cmd.Context(), sess); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Session %s renamed to %q.\n", sess.GetShortID(), args[1])
		return nil
	},
}

// sessionsClearCmd represents the sessions clear command
var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete old sessions",
	Long: `Delete old sessions permanently.

By default, deletes sessions not updated within session_retention_days (30 days).
Use --before to specify a different date, or --all to delete all sessions.

Warning: This action cannot be undone.

Examples:
  mentorchat sessions clear                      # Delete sessions older than the retention period
  mentorchat sessions clear --before 2024-01-01  # Delete sessions last updated before 2024-01-01
  mentorchat sessions clear --before 2024-12     # Delete sessions last updated before 2024-12-01
  mentorchat sessions clear --all                # Delete all sessions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		beforeDateStr, _ := cmd.Flags().GetString("before")
		deleteAll, _ := cmd.Flags().GetBool("all")

		cfg, store, err := openSessionStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var cutoff time.Time
		var question string
		switch {
		case deleteAll:
			cutoff = time.Now().Add(time.Hour)
			question = "Are you sure you want to delete all sessions?"
		case beforeDateStr != "":
			cutoff, err = parseDate(beforeDateStr)
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}
			question = fmt.Sprintf("Are you sure you want to delete sessions last updated before %s?", cutoff.Format("2006-01-02"))
		default:
			if cfg.SessionRetentionDays == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Session retention is disabled (session_retention_days = 0). Use --before or --all.")
				return nil
			}
			cutoff = time.Now().Add(-cfg.Retention())
			question = fmt.Sprintf("Are you sure you want to delete sessions older than %d days (before %s)?",
				cfg.SessionRetentionDays, cutoff.Format("2006-01-02"))
		}

		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
			fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
			return nil
		}

		return pruneSessions(cmd.Context(), cmd.OutOrStdout(), store, cutoff)
	},
}

// pruneSessions deletes sessions last updated before cutoff and reports the
// count. A failed deletion still reports what was removed before it.
func pruneSessions(ctx context.Context, out io.Writer, store session.Store, cutoff time.Time) error {
	deleted, err := session.Prune(ctx, store, cutoff)
	if err != nil {
		fmt.Fprintf(out, "Deleted %d sessions before the failure.\n", deleted)
		return fmt.Errorf("pruning sessions: %w", err)
	}
	fmt.Fprintf(out, "Successfully deleted %d sessions.\n", deleted)
	return nil
}

// parseDate parses a date string in various formats and returns a time.Time
// Supported formats: YYYY-MM-DD, YYYY-MM, YYYY
func parseDate(dateStr string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.ParseInLocation(layout, dateStr, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD, YYYY-MM, or YYYY)", dateStr)
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsRenameCmd)
	sessionsCmd.AddCommand(sessionsClearCmd)

	sessionsClearCmd.Flags().String("before", "", "Delete sessions last updated before this date (YYYY-MM-DD, YYYY-MM, or YYYY)")
	sessionsClearCmd.Flags().Bool("all", false, "Delete all sessions")
	sessionsClearCmd.MarkFlagsMutuallyExclusive("before", "all")
}
