package main

import (
	"encoding/json"
	"os"

	"github.com/pastryforge/pastryforge/internal/bakery"
)

func writeSnapshot(d *bakery.Dispatcher, path string) error {
	data, err := json.MarshalIndent(d.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
