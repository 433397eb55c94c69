package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/pratik-mahalle/fitcoach/internal/config"
	"github.com/pratik-mahalle/fitcoach/internal/repository/postgres"
	"github.com/pratik-mahalle/fitcoach/migrations"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Connected to %s database\n", cfg.Database.Driver)

	if len(os.Args) > 1 && os.Args[1] == "status" {
		if err := printStatus(db, cfg.Database.Driver); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read migration status: %v\n", err)
			os.Exit(1)
		}
		return
	}

	applied, err := postgres.Migrate(db, cfg.Database.Driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	if applied == 0 {
		fmt.Println("Database is up to date")
		return
	}
	fmt.Printf("Applied %d migration(s)\n", applied)
}

func printStatus(db *sql.DB, driver string) error {
	files, err := migrations.GetFS(driver)
	if err != nil {
		return err
	}
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return err
	}

	migrated, err := getMigratedVersions(db)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		state := "pending"
		if migrated[name] {
			state = "applied"
		}
		fmt.Printf("  %-40s %s\n", name, state)
	}
	return nil
}

func getMigratedVersions(db *sql.DB) (map[string]bool, error) {
	migrated := make(map[string]bool)

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		// Table missing means nothing has been applied yet
		return migrated, nil
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		migrated[name] = true
	}

	return migrated, rows.Err()
}
