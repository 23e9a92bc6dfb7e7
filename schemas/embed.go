// Package schemas embeds the SQL migrations applied by the migrate command.
package schemas

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
