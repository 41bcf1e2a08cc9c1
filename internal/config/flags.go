package config

import (
	"flag"
)

// parses CLI flags for the server binary
func ParseServerFlags(args []string) (Flags, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	migrateOnly := fs.Bool("migrate-only", false, "apply database migrations and exit")
	skipMigrate := fs.Bool("skip-migrate", false, "start without applying database migrations")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	return Flags{MigrateOnly: *migrateOnly, SkipMigrate: *skipMigrate}, nil
}
