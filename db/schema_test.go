package db

import (
	"strings"
	"testing"
)

func TestSchemaPerDriver(t *testing.T) {
	for _, driver := range []string{"postgres", "sqlite"} {
		script, err := Schema(driver)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", driver, err)
		}
		for _, table := range []string{`"user"`, "exercise"} {
			if !strings.Contains(script, "CREATE TABLE IF NOT EXISTS "+table) {
				t.Fatalf("%s: schema does not create %s", driver, table)
			}
		}
	}
}

func TestSchemaUnknownDriver(t *testing.T) {
	if _, err := Schema("mysql"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
