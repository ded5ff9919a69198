package main

import (
	"flag"
	"log"

	"github.com/StaffDesk-io/staffdesk/internal/config"
	"github.com/StaffDesk-io/staffdesk/internal/database"
)

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Testing database initialization...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, dbType, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	var users, employees int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		log.Fatalf("Failed to count users: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM employees").Scan(&employees); err != nil {
		log.Fatalf("Failed to count employees: %v", err)
	}

	log.Printf("Database connection test successful (type: %s, users: %d, employees: %d)", dbType, users, employees)
}
