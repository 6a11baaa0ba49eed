//go:build mage

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var binPath = filepath.Join(binDir, binName)

// Persons loads persons.yaml into the local person directory.
func Persons() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath, "persons", "load", "persons.yaml")
}

// Harvest fetches the DOIs listed in dois.txt from OpenAlex into records.yaml.
func Harvest() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "harvest", "--from-file", "dois.txt", "--out", "records.yaml")
}

// Import submits records.yaml to Pure, keeping payloads and a dated report.
func Import() error {
	mg.Deps(Build, Init)
	report := filepath.Join("reports", fmt.Sprintf("import-%s.xlsx", time.Now().Format("2006-01-02-150405")))
	return sh.RunV(binPath, "import", "records.yaml", "--payload-dir", "payloads", "--report", report)
}
