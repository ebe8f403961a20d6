// Package db embeds the schema scripts applied by the setup command.
package db

import (
	"embed"
	"fmt"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Schema returns the initial schema script for driver.
func Schema(driver string) (string, error) {
	contents, err := files.ReadFile(driver + "/0001_init.up.sql")
	if err != nil {
		return "", fmt.Errorf("no schema for driver %q: %w", driver, err)
	}
	return string(contents), nil
}
