// Package discounts exposes build-time assets shared by the CLI commands.
package discounts

import "embed"

// Migrations holds the SQL migration files applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
