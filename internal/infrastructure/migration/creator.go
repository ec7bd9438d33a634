package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MigrationFile describes a generated up/down migration pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down SQL file pair into migrationsDir.
// The version prefix is the creation time in YYYYMMDDHHMMSS form so files
// sort in creation order.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	mf := &MigrationFile{
		Version:     now.Format("20060102150405"),
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
	}

	base := mf.Version + "_" + sanitizeName(name)
	mf.UpPath = filepath.Join(migrationsDir, base+".up.sql")
	mf.DownPath = filepath.Join(migrationsDir, base+".down.sql")

	upHeader := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n-- Description: %s\n\n-- Write your UP migration SQL here\n\n",
		mf.Name, mf.Timestamp, mf.Description)
	if err := os.WriteFile(mf.UpPath, []byte(upHeader), 0644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}

	downHeader := fmt.Sprintf("-- Migration: %s (Rollback)\n-- Created: %s\n-- Description: Rollback for %s\n\n-- Write your DOWN migration SQL here\n\n",
		mf.Name, mf.Timestamp, mf.Description)
	if err := os.WriteFile(mf.DownPath, []byte(downHeader), 0644); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	return mf, nil
}

// sanitizeName lowercases a migration name and collapses whitespace, dashes
// and underscores into single underscores. Anything else is dropped.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			s := b.String()
			if len(s) > 0 && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}

	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of all migration pairs in a
// directory, identified by their .up.sql file. A missing directory yields
// an empty list.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok && base != "" {
			migrations = append(migrations, base)
		}
	}

	return migrations, nil
}
