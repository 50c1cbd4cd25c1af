// migrate-to-postgres copies game saves from SQLite to PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/mazecarver.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user mazecarver \
//	    -pg-password mazecarver \
//	    -pg-database mazecarver
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/lawnchairsociety/mazecarver/internal/database"
)

func main() {
	// Parse command-line flags
	sqlitePath := flag.String("sqlite", "data/mazecarver.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "mazecarver", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "mazecarver", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "mazecarver", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Migration Tool")
	log.Println("====================================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	src, err := database.Open(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer src.Close()

	saves, err := src.ListSaves()
	if err != nil {
		log.Fatalf("Failed to read saves: %v", err)
	}
	log.Printf("Found %d saves", len(saves))

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
		for _, s := range saves {
			log.Printf("  would migrate %s (seed %d, %dx%d)", s.ID, s.Seed, s.Width, s.Height)
		}
		return
	}

	pg := database.DefaultPostgresConfig()
	pg.Host = *pgHost
	pg.Port = *pgPort
	pg.User = *pgUser
	pg.Password = *pgPassword
	pg.Database = *pgDatabase
	pg.SSLMode = *pgSSLMode

	// OpenWithConfig creates the schema if it is missing.
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	dst, err := database.OpenWithConfig(database.Config{Driver: "postgres", Postgres: pg})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer dst.Close()
	log.Printf("Copying saves: %s -> %s", src.Dialect().DriverName(), dst.Dialect().DriverName())

	var migrated, skipped int
	for _, s := range saves {
		err := dst.ImportSave(s)
		switch {
		case errors.Is(err, database.ErrSaveExists):
			skipped++
		case err != nil:
			log.Fatalf("Failed to migrate save %s: %v", s.ID, err)
		default:
			migrated++
		}
	}

	log.Println("====================================")
	log.Printf("Migration complete! Migrated %d saves, skipped %d already present", migrated, skipped)
}
