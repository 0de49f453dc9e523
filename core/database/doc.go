// Package database handles the server registry connection and schema inspection.
//
// Connect wraps GORM and selects the MySQL driver for deployments or SQLite for
// local use and tests. The inspector reads table columns so a registry whose
// schema is managed outside the updater can be verified at startup instead of
// migrated.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	missing, err := database.MissingColumns(db, "servers", []string{"live_manifest"})
package database
