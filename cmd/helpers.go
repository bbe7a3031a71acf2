package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospector-cli/internal/geo"
	"github.com/sells-group/prospector-cli/internal/store"
)

// openStore opens the configured session store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// loadHierarchy loads the configured region hierarchy (built-in table when no
// path is configured).
func loadHierarchy() ([]geo.RegionDefinition, error) {
	return geo.LoadHierarchy(cfg.Geo.HierarchyPath)
}
