// Package genesis loads preallocated asset files at node startup. Each
// asset gets one JSON file in the directory named by
// config.Config.Network.Preallocated. LoadDirectory decodes each file
// and rejects any asset that fails asset.ValidateAsset; ApplyPreallocation
// wraps asset.Preallocate, which replaces rather than merges holdings and
// never adjusts supply.
package genesis

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/thecharge/uplink/asset"
)

// LoadDirectory reads every *.json file in dir, decodes each as an
// Asset, and returns them sorted by filename for deterministic genesis
// ordering across nodes.
func LoadDirectory(dir string) ([]asset.Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("genesis: read dir %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	log := logrus.WithField("component", "genesis")
	assets := make([]asset.Asset, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("genesis: read %q: %w", path, err)
		}
		a, err := asset.UnmarshalJSON(data)
		if err != nil {
			return nil, fmt.Errorf("genesis: decode %q: %w", path, err)
		}
		if !asset.ValidateAsset(a) {
			return nil, fmt.Errorf("genesis: %q fails asset invariants", path)
		}
		log.WithFields(logrus.Fields{
			"file":    name,
			"asset":   a.Address.Hex(),
			"holders": len(a.Holdings),
		}).Info("loaded preallocated asset")
		assets = append(assets, a)
	}
	return assets, nil
}

// ApplyPreallocation installs holdings onto an already-created asset
// from a genesis preallocation map. This replaces rather than merges,
// and never touches supply.
func ApplyPreallocation(a asset.Asset, holdings asset.Holdings) asset.Asset {
	return asset.Preallocate(a, holdings)
}
