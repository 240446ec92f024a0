// Package factory selects and caches the process-wide DataService
// instance. Construction is lazy and guarded, so concurrent first access
// cannot produce two adapters; Set exists for test injection.
package factory

import (
	"database/sql"
	"sync"

	"github.com/ecowave/ecowave-hub/internal/config"
	"github.com/ecowave/ecowave-hub/internal/store"
	"github.com/ecowave/ecowave-hub/internal/store/mysqlstore"
	"github.com/ecowave/ecowave-hub/internal/store/reststore"
)

// Deps carries everything adapter construction can need. DB may be nil
// when the REST backend is selected.
type Deps struct {
	Cfg config.Config
	DB  *sql.DB
}

var (
	mu       sync.Mutex
	instance store.DataService
)

// Resolve returns the cached DataService, constructing it on first call
// from the configured backend. Later calls ignore deps and return the
// same instance for the process lifetime.
func Resolve(deps Deps) store.DataService {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return instance
	}
	switch deps.Cfg.DataBackend {
	case config.BackendREST:
		instance = reststore.New(deps.Cfg.RESTBaseURL, deps.Cfg.RESTToken)
	default:
		instance = mysqlstore.New(deps.DB, deps.Cfg.BcryptCost)
	}
	return instance
}

// Set replaces the cached instance. Subsequent Resolve calls return ds;
// references handed out earlier are unaffected. Passing nil clears the
// cache so the next Resolve reconstructs from config.
func Set(ds store.DataService) {
	mu.Lock()
	instance = ds
	mu.Unlock()
}
