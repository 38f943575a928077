package migration

import "embed"

// Scripts holds the goose SQL migrations compiled into the binary.
//
//go:embed scripts/*.sql
var Scripts embed.FS

// ScriptsDir is the directory inside Scripts, and the on-disk path used by `migrate create`.
const ScriptsDir = "scripts"
