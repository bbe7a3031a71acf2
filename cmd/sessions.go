package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage collection sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		city, _ := cmd.Flags().GetString("city")
		category, _ := cmd.Flags().GetString("category")
		status, _ := cmd.Flags().GetString("status")

		sessions, err := st.ListSessions(ctx, store.SessionFilter{
			City:     city,
			Category: category,
			Status:   model.SessionStatus(status),
		})
		if err != nil {
			return eris.Wrap(err, "list sessions")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tCITY\tCATEGORY\tSTATUS\tRECORDS")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
				s.ID, s.Date.Format("2006-01-02"), s.City, s.Category, s.Status, len(s.Records))
		}
		return w.Flush()
	},
}

var sessionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		city, _ := cmd.Flags().GetString("city")
		category, _ := cmd.Flags().GetString("category")
		task, _ := cmd.Flags().GetString("task")

		sess, err := st.CreateSession(ctx, model.Session{
			Date:     time.Now().UTC(),
			Task:     task,
			Category: category,
			City:     city,
		})
		if err != nil {
			return eris.Wrap(err, "create session")
		}

		fmt.Println(sess.ID)
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteSession(ctx, args[0]); err != nil {
			return eris.Wrap(err, "delete session")
		}
		zap.L().Info("session deleted", zap.String("id", args[0]))
		return nil
	},
}

var sessionsStatusCmd = &cobra.Command{
	Use:   "status <id> <in_progress|completed|error>",
	Short: "Update a session's lifecycle status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		status := model.SessionStatus(args[1])
		switch status {
		case model.SessionStatusInProgress, model.SessionStatusCompleted, model.SessionStatusError:
		default:
			return eris.Errorf("unknown status %q", args[1])
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.UpdateSessionStatus(ctx, args[0], status); err != nil {
			return eris.Wrap(err, "update session status")
		}
		zap.L().Info("session status updated",
			zap.String("id", args[0]),
			zap.String("status", args[1]),
		)
		return nil
	},
}

var sessionsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import scraped sessions from a JSON file",
	Long:  "Reads a JSON array of sessions (as produced by the collector) and stores each one. Session ids are generated when absent.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}

		var sessions []model.Session
		if err := json.Unmarshal(data, &sessions); err != nil {
			return eris.Wrapf(err, "parse %s", args[0])
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		for _, s := range sessions {
			created, err := st.CreateSession(ctx, s)
			if err != nil {
				return eris.Wrapf(err, "import session %q %q", s.City, s.Category)
			}
			zap.L().Info("session imported",
				zap.String("id", created.ID),
				zap.String("city", created.City),
				zap.String("category", created.Category),
				zap.Int("records", len(created.Records)),
			)
		}

		fmt.Printf("imported %d sessions\n", len(sessions))
		return nil
	},
}

func init() {
	sessionsListCmd.Flags().String("city", "", "filter by city substring")
	sessionsListCmd.Flags().String("category", "", "filter by category")
	sessionsListCmd.Flags().String("status", "", "filter by status (in_progress|completed|error)")

	sessionsCreateCmd.Flags().String("city", "", "session city label")
	sessionsCreateCmd.Flags().String("category", "", "establishment category (e.g. Pizza)")
	sessionsCreateCmd.Flags().String("task", "", "free-text task label")

	sessionsCmd.AddCommand(sessionsListCmd, sessionsCreateCmd, sessionsDeleteCmd, sessionsStatusCmd, sessionsImportCmd)
	rootCmd.AddCommand(sessionsCmd)
}
