// Package config provides configuration management for the modpack updater.
//
// Settings come from environment variables, optionally seeded from a .env file.
// Defaults are declared next to each field through `default` struct tags and
// registered with Viper by reflection, so every key is reachable through
// AutomaticEnv (compare.exclude <- COMPARE_EXCLUDE).
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO credentials and bucket
//   - Manifest: manifest key prefix and cache lifetime
//   - Log: logging level and format
//   - Database: server registry connection
//   - Compare: diff engine strategies, excludes and malformed record policy
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := cfg.Compare.Options(logger)
package config
