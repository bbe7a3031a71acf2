// Package export serializes pipeline output into the file formats the sales
// team consumes. The pipeline itself emits structured values only; everything
// here is presentation.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/scorer"
)

// scoredColumns defines the ordered scored-record CSV output columns.
var scoredColumns = []string{
	"Name",
	"Address",
	"City",
	"Phone",
	"Website",
	"Rating",
	"Review Count",
	"Opportunity Score",
	"Band",
	"Red Flags",
	"Strengths",
}

// WriteScoredCSV writes scored records as a CSV file.
func WriteScoredCSV(records []model.ScoredRecord, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(scoredColumns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for _, r := range records {
		if err := w.Write(buildScoredRow(r)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	return nil
}

// buildScoredRow maps a ScoredRecord to a CSV row.
func buildScoredRow(r model.ScoredRecord) []string {
	return []string{
		r.Name,
		r.Address,
		r.City,
		r.Phone,
		r.Website,
		formatRating(r.Rating),
		fmt.Sprintf("%d", r.ReviewCount),
		fmt.Sprintf("%d", r.OpportunityScore),
		scorer.Band(r.OpportunityScore),
		joinFlags(r.RedFlags),
		joinTags(r.Strengths),
	}
}

// formatRating renders 0 (unknown) as empty rather than "0.0".
func formatRating(rating float64) string {
	if rating == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", rating)
}

func joinFlags(flags []model.RedFlag) string {
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = string(f)
	}
	return strings.Join(parts, ";")
}

func joinTags(tags []model.StrengthTag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ";")
}
