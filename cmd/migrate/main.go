// migrate applies the embedded SQL schema.
//
//	go run ./cmd/migrate [up|down|drop|version] [--steps N]
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/pflag"

	"dayflow_backend/internals/configs"
	"dayflow_backend/internals/databases/migrations"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	steps := flags.Int("steps", 0, "apply only N migrations (up) or roll back N (down); 0 means all")
	if err := flags.Parse(args); err != nil {
		return err
	}
	action := "up"
	if flags.NArg() > 0 {
		action = flags.Arg(0)
	}

	configs.LoadEnv()
	cfg, err := configs.FromEnv()
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := apply(m, action, *steps); err != nil {
		return fmt.Errorf("migration %s: %w", action, err)
	}
	log.Printf("[INFO] migration %s completed", action)
	return nil
}

func apply(m *migrate.Migrate, action string, steps int) error {
	var err error
	switch action {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Printf("[INFO] no migration applied")
			return nil
		}
		if verr != nil {
			return verr
		}
		log.Printf("[INFO] version=%d dirty=%t", version, dirty)
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
