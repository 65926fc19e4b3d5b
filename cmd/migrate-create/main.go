package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prized-pic/internal/logging"
)

func main() {
	name := flag.String("name", "", "migration name")
	dir := flag.String("dir", filepath.Join("db", "migrations"), "migrations directory")
	flag.Parse()
	logging.Bootstrap("info")

	if *name == "" {
		logging.Log.Fatal("migration name is required")
	}
	if strings.ContainsAny(*name, " ") {
		logging.Log.Fatal("migration name must not contain spaces")
	}

	upPath, downPath := migrationPaths(*dir, *name, time.Now().UTC())
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		logging.Log.WithError(err).Fatal("create migrations dir")
	}
	if err := writeFile(upPath, "-- up migration\n"); err != nil {
		logging.Log.WithError(err).Fatal("create up migration")
	}
	if err := writeFile(downPath, "-- down migration\n"); err != nil {
		logging.Log.WithError(err).Fatal("create down migration")
	}

	logging.Log.Infof("created %s and %s", upPath, downPath)
}

func migrationPaths(dir, name string, now time.Time) (string, string) {
	base := fmt.Sprintf("%s_%s", now.Format("20060102150405"), name)
	return filepath.Join(dir, base+".up.sql"), filepath.Join(dir, base+".down.sql")
}

func writeFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
