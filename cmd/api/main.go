package main

import (
	"flag"
	"log"

	"github.com/StaffDesk-io/staffdesk/internal/api"
	"github.com/StaffDesk-io/staffdesk/internal/config"
	"github.com/StaffDesk-io/staffdesk/internal/database"
	"github.com/StaffDesk-io/staffdesk/internal/store"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Starting StaffDesk API v%s with config: %s", version, *configPath)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	db, dbType, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	apiServer, err := api.NewApi(*cfg, store.New(db, dbType))
	if err != nil {
		log.Fatal(err)
	}

	apiServer.Serve()
}
