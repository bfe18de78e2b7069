// seed creates the demo accounts (admin, hr, employee).
//
//	go run ./cmd/seed [--file internals/seeds/accounts/data_accounts.yaml]
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"dayflow_backend/internals/configs"
	database "dayflow_backend/internals/databases"
	"dayflow_backend/internals/seeds"
)

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	file := flags.StringP("file", "f", "", "YAML file with accounts (built-in demo accounts when empty)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := seeds.RunAllSeeds(ctx, db, *file, cfg.BcryptCost, cfg.Location); err != nil {
		log.Fatalf("[ERROR] seed: %v", err)
	}
}
