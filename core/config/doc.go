// Package config provides configuration management for kb-admin.
//
// Values come from the environment, optionally seeded from a .env file. Every
// key is registered from the struct tags of the section configs, so
// DATABASE_DRIVER maps to database.driver and the default tag applies when the
// variable is unset.
//
// # Configuration Structure
//
//   - Server: port, static API key, timezone for upload stamps
//   - Database: driver (postgres, mysql, sqlite) and connection details
//   - Storage: S3/MinIO credentials and bucket
//   - Log: level and format
//   - Query: count and page cache TTLs
//   - Reconcile: optimistic locking, refresh on no-op saves
//   - Upload, NAS: document target and DiskStation credentials
//   - Agent: remote agent deployment
//   - Auth: admin password hash and token signing
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
