package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospector-cli/internal/aggregate"
	"github.com/sells-group/prospector-cli/internal/store"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate stored sessions by city, type, or region",
}

var aggregateCityCmd = &cobra.Command{
	Use:   "city",
	Short: "City-level aggregates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.ListSessions(ctx, store.SessionFilter{})
		if err != nil {
			return eris.Wrap(err, "list sessions")
		}

		cities := aggregate.ByCity(sessions)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cities)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CITY\tESTABLISHMENTS\tAVG RATING\tPHONE\tWEBSITE\tHIGH OPP\tCATEGORIES")
		for _, ca := range cities {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%d\t%d\t%d\t%s\n",
				ca.City, ca.TotalEstablishments, ca.AvgRating,
				ca.WithPhone, ca.WithWebsite, ca.HighOpportunity,
				strings.Join(ca.Categories, ","))
		}
		return w.Flush()
	},
}

var aggregateTypesCmd = &cobra.Command{
	Use:   "types <city>",
	Short: "Type-level aggregates within one city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.ListSessions(ctx, store.SessionFilter{City: args[0]})
		if err != nil {
			return eris.Wrap(err, "list sessions")
		}

		types := aggregate.ByType(sessions, args[0])
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(types)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tESTABLISHMENTS\tAVG RATING\tAVG REVIEWS\tPHONE\tWEBSITE\tHIGH OPP")
		for _, ta := range types {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f\t%d\t%d\t%d\n",
				ta.Category, ta.TotalEstablishments, ta.AvgRating, ta.AvgReviews,
				ta.WithPhone, ta.WithWebsite, ta.HighOpportunity)
		}
		return w.Flush()
	},
}

var aggregateRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Region-level aggregates over the full hierarchy",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

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

		regions := aggregate.ByRegion(aggregate.ByCity(sessions), hierarchy)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(regions)
		}

		withData, _ := cmd.Flags().GetBool("with-data")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tREGION\tESTABLISHMENTS\tAVG RATING\tHIGH OPP\tCITIES")
		for _, ra := range regions {
			if withData && !ra.HasData {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%d\t%d\n",
				ra.Code, ra.Name, ra.TotalEstablishments, ra.AvgRating,
				ra.HighOpportunity, len(ra.Cities))
		}
		return w.Flush()
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

func init() {
	for _, c := range []*cobra.Command{aggregateCityCmd, aggregateTypesCmd, aggregateRegionsCmd} {
		c.Flags().Bool("json", false, "output as JSON")
	}
	aggregateRegionsCmd.Flags().Bool("with-data", false, "only show regions with data")

	aggregateCmd.AddCommand(aggregateCityCmd, aggregateTypesCmd, aggregateRegionsCmd)
	rootCmd.AddCommand(aggregateCmd)
}
