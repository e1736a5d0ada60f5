// Package backend picks a storage.Storage implementation by driver name.
package backend

import (
	"fmt"

	"github.com/aanand-mishra/record-store/internal/config"
	"github.com/aanand-mishra/record-store/internal/storage"
	"github.com/aanand-mishra/record-store/internal/storage/jsonfile"
	"github.com/aanand-mishra/record-store/internal/storage/sqlite"
)

// Open returns the backend for driver ("json" or "sqlite") rooted at
// path. Nothing is opened on disk until the first Save or Load.
func Open(driver, path string) (storage.Storage, error) {
	switch driver {
	case config.DriverJSON, "":
		return jsonfile.New(path), nil
	case config.DriverSQLite:
		return sqlite.New(path), nil
	}
	return nil, fmt.Errorf("backend.Open: unknown driver %q", driver)
}
