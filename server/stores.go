package server

import (
	"context"
	"fmt"

	"github.com/Daskott/sosrelay/server/firestore"
	"github.com/Daskott/sosrelay/server/models"
	"github.com/Daskott/sosrelay/server/sos"
	"github.com/Daskott/sosrelay/shared"
)

// OpenContactStore opens the store selected by 'store.driver'.
// The returned func releases the store's resources.
func OpenContactStore(ctx context.Context, config *shared.ServerConfig, devMode bool) (sos.ContactStore, func() error, error) {
	switch config.Store.Driver {
	case shared.MEMORY_STORE:
		return sos.NewMemoryStore(config.Contacts.Static), func() error { return nil }, nil

	case shared.SQLITE_STORE:
		dbRootDir, err := SqliteRootDir(config, devMode)
		if err != nil {
			return nil, nil, err
		}

		db, err := models.OpenDB(config.Sqlite.PassPhrase, dbRootDir)
		if err != nil {
			return nil, nil, err
		}

		return models.NewContactStore(db), func() error { return models.CloseDB(db) }, nil

	case shared.FIRESTORE_STORE:
		store, err := firestore.NewContactStore(
			ctx,
			config.Google.ProjectID,
			config.Google.Firestore.Collection,
			config.Google.ApplicationCredentials,
		)
		if err != nil {
			return nil, nil, err
		}

		return store, store.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported store driver %q", config.Store.Driver)
}

// SqliteRootDir returns 'sqlite.dir' if set, else the default config directory
func SqliteRootDir(config *shared.ServerConfig, devMode bool) (string, error) {
	if config.Sqlite.Dir != "" {
		return config.Sqlite.Dir, nil
	}
	return ConfigDirectory(devMode)
}
