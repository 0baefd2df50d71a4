package migrations

import (
	"io"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	src, err := iofs.New(migrationFiles, ".")
	if err != nil {
		t.Fatalf("iofs.New: %v", err)
	}
	defer src.Close()

	version, err := src.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected first version 1, got %d", version)
	}

	up, _, err := src.ReadUp(version)
	if err != nil {
		t.Fatalf("ReadUp: %v", err)
	}
	defer up.Close()
	body, err := io.ReadAll(up)
	if err != nil {
		t.Fatalf("read up migration: %v", err)
	}
	for _, table := range []string{"bands", "venues", "events"} {
		if !strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("up migration does not create %s", table)
		}
	}

	down, _, err := src.ReadDown(version)
	if err != nil {
		t.Fatalf("ReadDown: %v", err)
	}
	down.Close()
}
