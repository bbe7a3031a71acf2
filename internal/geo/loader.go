package geo

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadHierarchy reads a region hierarchy from a YAML file. An empty path
// returns the built-in default table. The file holds a list of
// RegionDefinition entries:
//
//	- code: "93"
//	  name: Seine-Saint-Denis
//	  kind: department
//	  cities:
//	    - name: Le Blanc-Mesnil
//	      short: Blanc-Mesnil
func LoadHierarchy(path string) ([]RegionDefinition, error) {
	if path == "" {
		return DefaultHierarchy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: read hierarchy %s", path)
	}

	var hierarchy []RegionDefinition
	if err := yaml.Unmarshal(data, &hierarchy); err != nil {
		return nil, eris.Wrapf(err, "geo: parse hierarchy %s", path)
	}
	if len(hierarchy) == 0 {
		return nil, eris.Errorf("geo: hierarchy %s is empty", path)
	}
	return hierarchy, nil
}
