package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospector-cli/internal/model"
)

// WriteRegionJSON writes region aggregates as indented JSON, one entry per
// hierarchy unit including the zero-valued ones, so map overlays can render
// "no data" states.
func WriteRegionJSON(regions []model.RegionAggregate, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create json")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(regions); err != nil {
		return eris.Wrap(err, "export: encode regions")
	}
	return nil
}
