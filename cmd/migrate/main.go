// Command migrate applies the SQL files under ./migrations to the audit
// database. Each file holds a "-- +migrate Up" and a "-- +migrate Down"
// section.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"backoffice-console/internal/config"
	"backoffice-console/internal/db"
)

const markerPrefix = "-- +migrate "

type migration struct {
	version string
	path    string
}

func main() {
	mode := flag.String("mode", "up", "up, down or status")
	dir := flag.String("dir", "./migrations", "directory holding the .sql migrations")
	flag.Parse()

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("database not configured: %v", err)
	}

	conn, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := run(conn, *mode, *dir, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(db *sql.DB, mode, migrationsDir string, out io.Writer) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	migrations, err := discover(migrationsDir)
	if err != nil {
		return err
	}

	switch mode {
	case "up":
		return runMigrationsUp(db, migrations, out)
	case "down":
		return runMigrationsDown(db, migrations, out)
	case "status":
		return printStatus(db, migrations, out)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'status')", mode)
	}
}

// discover lists the .sql files in dir ordered by file name.
func discover(dir string) ([]migration, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Strings(files)

	out := make([]migration, 0, len(files))
	for _, f := range files {
		out = append(out, migration{version: filepath.Base(f), path: f})
	}
	return out, nil
}

func applied(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	done := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		done[v] = true
	}
	return done, rows.Err()
}

// execInTx runs the section and the bookkeeping statement atomically.
func execInTx(db *sql.DB, section, bookkeeping, version string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.Exec(section); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(bookkeeping, version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration version: %w", err)
	}
	return tx.Commit()
}

func runMigrationsUp(db *sql.DB, migrations []migration, out io.Writer) error {
	done, err := applied(db)
	if err != nil {
		return err
	}

	var count int
	for _, m := range migrations {
		if done[m.version] {
			continue
		}

		content, err := os.ReadFile(m.path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", m.path, err)
		}
		up := extractMigrationPart(string(content), "Up")
		if strings.TrimSpace(up) == "" {
			return fmt.Errorf("migration %s has no Up section", m.version)
		}

		fmt.Fprintf(out, "Applying migration: %s\n", m.version)
		if err := execInTx(db, up, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.version); err != nil {
			return fmt.Errorf("migration failed (%s): %w", m.version, err)
		}
		count++
	}

	fmt.Fprintf(out, "%d migration(s) applied.\n", count)
	return nil
}

func runMigrationsDown(db *sql.DB, migrations []migration, out io.Writer) error {
	var lastVersion string
	err := db.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`).Scan(&lastVersion)
	if errors.Is(err, sql.ErrNoRows) {
		fmt.Fprintln(out, "No migrations to roll back.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	var target *migration
	for i := range migrations {
		if migrations[i].version == lastVersion {
			target = &migrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration file not found for version: %s", lastVersion)
	}

	content, err := os.ReadFile(target.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", target.path, err)
	}

	fmt.Fprintf(out, "Rolling back migration: %s\n", lastVersion)
	down := extractMigrationPart(string(content), "Down")
	if err := execInTx(db, down, `DELETE FROM schema_migrations WHERE version = $1`, lastVersion); err != nil {
		return fmt.Errorf("rollback failed (%s): %w", lastVersion, err)
	}
	return nil
}

func printStatus(db *sql.DB, migrations []migration, out io.Writer) error {
	done, err := applied(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		state := "pending"
		if done[m.version] {
			state = "applied"
		}
		fmt.Fprintf(out, "%-8s %s\n", state, m.version)
	}
	return nil
}

// extractMigrationPart returns the lines between the section's marker and the
// next marker.
func extractMigrationPart(content, section string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, markerPrefix) {
			if inPart {
				break
			}
			inPart = strings.TrimSpace(strings.TrimPrefix(trimmed, markerPrefix)) == section
			continue
		}
		if inPart {
			part.WriteString(line)
			part.WriteByte('\n')
		}
	}
	return part.String()
}
