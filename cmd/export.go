package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prospector-cli/internal/aggregate"
	"github.com/sells-group/prospector-cli/internal/dedupe"
	"github.com/sells-group/prospector-cli/internal/export"
	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/scorer"
	"github.com/sells-group/prospector-cli/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scored records and aggregates to files",
	Long: `Computes the full pipeline over stored sessions and writes three
artifacts: scored establishments (CSV), city and type aggregates (XLSX), and
region aggregates (JSON, complete hierarchy including empty regions).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.Export.Dir
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "create export dir %s", dir)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		hierarchy, err := loadHierarchy()
		if err != nil {
			return err
		}

		sessions, err := st.ListSessions(ctx, store.SessionFilter{})
		if err != nil {
			return eris.Wrap(err, "list sessions")
		}

		scored := scorer.ScoreAll(dedupe.Deduplicate(sessions))
		cities := aggregate.ByCity(sessions)
		regions := aggregate.ByRegion(cities, hierarchy)

		// Type aggregates for every city that has data.
		var types []model.TypeAggregate
		for _, ca := range cities {
			types = append(types, aggregate.ByType(sessions, ca.City)...)
		}

		var g errgroup.Group
		g.Go(func() error {
			return export.WriteScoredCSV(scored, filepath.Join(dir, "scored.csv"))
		})
		g.Go(func() error {
			return export.WriteCityXLSX(cities, types, filepath.Join(dir, "aggregates.xlsx"))
		})
		g.Go(func() error {
			return export.WriteRegionJSON(regions, filepath.Join(dir, "regions.json"))
		})
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "export")
		}

		zap.L().Info("export complete",
			zap.String("dir", dir),
			zap.Int("establishments", len(scored)),
			zap.Int("cities", len(cities)),
			zap.Int("regions", len(regions)),
		)
		fmt.Printf("wrote scored.csv, aggregates.xlsx, regions.json to %s\n", dir)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("dir", "", "output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}
