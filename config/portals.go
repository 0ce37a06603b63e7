package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"imovelhub/server/internal/models"
)

//go:embed portals.yaml
var defaultCatalog []byte

// PortalCatalog is the syndication catalog file layout
type PortalCatalog struct {
	Portals []models.Portal `yaml:"portals"`
}

var (
	portalCatalog *PortalCatalog
	portalLock    sync.RWMutex
)

// LoadPortalCatalog loads the catalog from path, falling back to the
// embedded catalog when the file does not exist
func LoadPortalCatalog(path string) error {
	data, err := readCatalogFile(path)
	if err != nil {
		return err
	}

	catalog, err := parsePortalCatalog(data)
	if err != nil {
		return err
	}

	portalLock.Lock()
	defer portalLock.Unlock()
	portalCatalog = catalog
	return nil
}

func readCatalogFile(path string) ([]byte, error) {
	if path == "" {
		return defaultCatalog, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return defaultCatalog, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read portal catalog: %v", err)
	}
	return data, nil
}

func parsePortalCatalog(data []byte) (*PortalCatalog, error) {
	var catalog PortalCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse portal catalog: %v", err)
	}

	seen := make(map[string]bool, len(catalog.Portals))
	for i, portal := range catalog.Portals {
		if portal.ID == "" {
			return nil, fmt.Errorf("portal at position %d has no id", i)
		}
		if seen[portal.ID] {
			return nil, fmt.Errorf("duplicate portal id: %s", portal.ID)
		}
		seen[portal.ID] = true
	}
	return &catalog, nil
}

// GetPortals returns all catalog entries in catalog order
func GetPortals() []models.Portal {
	portalLock.RLock()
	defer portalLock.RUnlock()

	if portalCatalog == nil {
		return nil
	}

	portals := make([]models.Portal, len(portalCatalog.Portals))
	copy(portals, portalCatalog.Portals)
	return portals
}

// GetPortalByID returns a specific portal or nil
func GetPortalByID(id string) *models.Portal {
	portalLock.RLock()
	defer portalLock.RUnlock()

	if portalCatalog == nil {
		return nil
	}

	for _, portal := range portalCatalog.Portals {
		if portal.ID == id {
			p := portal
			return &p
		}
	}
	return nil
}

// GetPortalIDs returns the identifiers of every portal in the catalog
func GetPortalIDs() []string {
	portals := GetPortals()
	ids := make([]string, len(portals))
	for i, portal := range portals {
		ids[i] = portal.ID
	}
	return ids
}
