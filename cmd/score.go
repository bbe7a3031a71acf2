package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospector-cli/internal/dedupe"
	"github.com/sells-group/prospector-cli/internal/export"
	"github.com/sells-group/prospector-cli/internal/scorer"
	"github.com/sells-group/prospector-cli/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Deduplicate and score stored sessions",
	Long: `Collapses records across stored sessions into one record per
establishment, derives red flags and strength tags, and prints opportunity
scores sorted highest first.

Examples:
  # Score everything in the store
  score

  # Score one city, export to CSV
  score --city Paris --csv paris.csv

  # Score one category within a city
  score --city Paris --category Kebab`,
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	city, _ := cmd.Flags().GetString("city")
	category, _ := cmd.Flags().GetString("category")
	csvPath, _ := cmd.Flags().GetString("csv")

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.ListSessions(ctx, store.SessionFilter{City: city, Category: category})
	if err != nil {
		return eris.Wrap(err, "list sessions")
	}

	scored := scorer.ScoreAll(dedupe.Deduplicate(sessions))
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OpportunityScore > scored[j].OpportunityScore
	})

	zap.L().Info("scored establishments",
		zap.Int("sessions", len(sessions)),
		zap.Int("establishments", len(scored)),
	)

	if csvPath != "" {
		if err := export.WriteScoredCSV(scored, csvPath); err != nil {
			return err
		}
		fmt.Printf("wrote %d scored establishments to %s\n", len(scored), csvPath)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tBAND\tNAME\tCITY\tFLAGS\tSTRENGTHS")
	for _, r := range scored {
		flags := make([]string, len(r.RedFlags))
		for i, f := range r.RedFlags {
			flags[i] = string(f)
		}
		tags := make([]string, len(r.Strengths))
		for i, t := range r.Strengths {
			tags[i] = string(t)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.OpportunityScore, scorer.Band(r.OpportunityScore), r.Name, r.City,
			strings.Join(flags, ","), strings.Join(tags, ","))
	}
	return w.Flush()
}

func init() {
	f := scoreCmd.Flags()
	f.String("city", "", "filter sessions by city substring")
	f.String("category", "", "filter sessions by category")
	f.String("csv", "", "write results to a CSV file instead of stdout")
	rootCmd.AddCommand(scoreCmd)
}
