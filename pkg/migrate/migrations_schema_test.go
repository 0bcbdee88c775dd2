package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/svalverde/stockroom-backend/pkg/migrate"
)

func TestInitSchemaCoversDurableContract(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE products",
		"sku TEXT NOT NULL UNIQUE",
		"CREATE TABLE customers",
		"CREATE TABLE suppliers",
		"CREATE TABLE purchases",
		"CREATE TABLE sales",
		"supplier_id BIGINT REFERENCES suppliers (id)",
		"customer_id BIGINT REFERENCES customers (id)",
		"DROP TABLE IF EXISTS products",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}
