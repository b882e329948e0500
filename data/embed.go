// Package data embeds fixture payloads used by tests and local seeding.
package data

import (
	_ "embed"
)

//go:embed fixtures/sample_backup.json
var SampleBackup []byte
