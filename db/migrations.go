// Package db embeds the SQL migrations for every supported driver.
package db

import "embed"

// Migrations holds one directory per driver: postgres/ and sqlite/.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var Migrations embed.FS
